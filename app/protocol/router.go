package protocol

import (
	"github.com/pkg/errors"

	"github.com/distledger/ledgernode/app/appmessage"
	"github.com/distledger/ledgernode/domain/ledger"
)

// Router dispatches a decoded Message to whichever handler is registered
// for its command. It is the domain-handling half of a netadapter-style
// router, with no transport half — delivery of the raw bytes that get
// decoded into a Message is out of scope.
type Router struct {
	handlers map[appmessage.MessageCommand]func(appmessage.Message, ledger.LocalStore) error
}

// NewRouter creates a Router with the default handlers for every known
// MessageCommand wired to Message.Handle.
func NewRouter() *Router {
	r := &Router{handlers: make(map[appmessage.MessageCommand]func(appmessage.Message, ledger.LocalStore) error)}

	handle := func(msg appmessage.Message, ls ledger.LocalStore) error {
		return msg.Handle(ls)
	}
	r.handlers[appmessage.CmdTransaction] = handle
	r.handlers[appmessage.CmdProof] = handle
	r.handlers[appmessage.CmdBlock] = handle
	r.handlers[appmessage.CmdTransactionPattern] = handle

	return r
}

// SetHandler overrides the handler used for cmd, e.g. to route
// CmdProof through a worker pool instead of handling it inline.
func (r *Router) SetHandler(cmd appmessage.MessageCommand, handler func(appmessage.Message, ledger.LocalStore) error) {
	r.handlers[cmd] = handler
}

// Route dispatches msg to its registered handler.
func (r *Router) Route(msg appmessage.Message, ls ledger.LocalStore) error {
	handler, ok := r.handlers[msg.Command()]
	if !ok {
		return errors.Errorf("no handler registered for command %s", msg.Command())
	}
	return handler(msg, ls)
}
