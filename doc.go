/*
ledgernode is a node in a scale-out distributed ledger. Rather than every
node validating every transaction against a single chain, each node keeps
only its own chain of blocks and accepts a transaction by verifying a proof:
a bundle of the source chains a payment's funds trace back through, anchored
to a main chain oracle that periodically commits digests of per-node chains.

The default options are sane for most users. This means ledgernode will work
'out of the box' for most users. However, there are also a variety of flags
that can be used to control it.

Usage:

	ledgernode [OPTIONS]

For an up-to-date help message:

	ledgernode --help

The long form of all option flags (except -C) can be specified in a
configuration file that is automatically parsed when ledgernode starts up.
By default, the configuration file is located at ~/.ledgernode/ledgernode.conf
on POSIX-style operating systems, at
~/Library/Application Support/Ledgernode/ledgernode.conf on macOS and at
%LOCALAPPDATA%\Ledgernode\ledgernode.conf on Windows. The -C (--configfile)
flag can be used to override this location.
*/
package main
