// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package bus

import (
	"context"
	"io"

	"github.com/juju/errors"
)

// Serve answers bridge requests arriving on link with transactions on b,
// until the link reaches EOF or ctx is done. A clean EOF between requests
// returns nil. An unknown request is answered with BRIDGE_STATUS_BAD_OP,
// then Serve returns ErrBridgeOp so the caller drops the link.
//
// Cancellation is only observed between requests; a blocked read on the
// link is not interrupted.
func Serve(ctx context.Context, link io.ReadWriter, b Bus) (err error) {
	buf := make([]byte, 0, 5)

	for {
		if err = ctx.Err(); err != nil {
			return
		}

		var op [1]byte
		_, err = io.ReadFull(link, op[:])
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Trace(err)
		}

		var addr, value uint32
		switch op[0] {
		case BRIDGE_OP_READ:
			addr, err = readUint32(link)
			if err != nil {
				return errors.Annotate(err, "bridge read request")
			}
			value = b.Read32(addr)
			buf = append(buf[:0], BRIDGE_STATUS_OK)
			buf = appendUint32(buf, value)
		case BRIDGE_OP_WRITE:
			addr, err = readUint32(link)
			if err == nil {
				value, err = readUint32(link)
			}
			if err != nil {
				return errors.Annotate(err, "bridge write request")
			}
			b.Write32(addr, value)
			buf = append(buf[:0], BRIDGE_STATUS_OK)
		default:
			// The frame length is unknown, so the link cannot be resynchronised.
			buf = append(buf[:0], BRIDGE_STATUS_BAD_OP)
			if _, err = link.Write(buf); err != nil {
				return errors.Annotate(err, "bridge response")
			}
			return ErrBridgeOp(op[0])
		}

		if _, err = link.Write(buf); err != nil {
			return errors.Annotate(err, "bridge response")
		}
	}
}
