// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package appmessage

import (
	"fmt"

	"github.com/distledger/ledgernode/domain/ledger"
)

// MessageCommand is a number identifying the type of a wire message.
type MessageCommand uint32

// Commands used in message envelopes to describe the type of payload that
// follows.
const (
	CmdTransaction MessageCommand = iota
	CmdProof
	CmdBlock

	// CmdTransactionPattern is fixed at 6 because that's the numeric value
	// the original source assigns it — the only message id whose value is
	// observed rather than merely sequential.
	CmdTransactionPattern MessageCommand = 6
)

// MessageCommandToString maps every known MessageCommand to its string
// representation.
var MessageCommandToString = map[MessageCommand]string{
	CmdTransaction:        "Transaction",
	CmdProof:              "Proof",
	CmdBlock:              "Block",
	CmdTransactionPattern: "TransactionPattern",
}

func (cmd MessageCommand) String() string {
	if s, ok := MessageCommandToString[cmd]; ok {
		return fmt.Sprintf("%s [code %d]", s, uint32(cmd))
	}
	return fmt.Sprintf("unknown command [code %d]", uint32(cmd))
}

// Message is a decoded wire message: it knows its own command and knows
// how to apply itself against a node's local state.
type Message interface {
	Command() MessageCommand
	Handle(localStore ledger.LocalStore) error
}
