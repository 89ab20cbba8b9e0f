package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/Qthai16/queue-lab/common/queue"

	"github.com/apache/thrift/lib/go/thrift"
)

// QueueSnapshot is what `show` prints for one queue of the chain.
type QueueSnapshot struct {
	ID      int32
	Current bool
	Size    int32
	Values  []string
}

func NewQueueSnapshot(ctx *queue.Context, current bool) *QueueSnapshot {
	values := ctx.Q.Values()
	return &QueueSnapshot{
		ID:      int32(ctx.ID),
		Current: current,
		Size:    int32(len(values)),
		Values:  values,
	}
}

// Write encodes the snapshot as a thrift struct.
func (s *QueueSnapshot) Write(ctx context.Context, proto thrift.TProtocol) (err error) {
	if err = proto.WriteStructBegin(ctx, "QueueSnapshot"); err != nil {
		return err
	}
	if err = writeI32Field(ctx, proto, "id", 1, s.ID); err != nil {
		return err
	}
	if err = proto.WriteFieldBegin(ctx, "current", thrift.BOOL, 2); err != nil {
		return err
	}
	if err = proto.WriteBool(ctx, s.Current); err != nil {
		return err
	}
	if err = proto.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if err = writeI32Field(ctx, proto, "size", 3, s.Size); err != nil {
		return err
	}
	if err = proto.WriteFieldBegin(ctx, "values", thrift.LIST, 4); err != nil {
		return err
	}
	if err = writeListBegin(ctx, proto, thrift.STRING, len(s.Values)); err != nil {
		return err
	}
	for _, v := range s.Values {
		if err = proto.WriteString(ctx, v); err != nil {
			return err
		}
	}
	if err = writeListEnd(ctx, proto); err != nil {
		return err
	}
	if err = proto.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if err = proto.WriteFieldStop(ctx); err != nil {
		return err
	}
	return proto.WriteStructEnd(ctx)
}

func writeI32Field(ctx context.Context, proto thrift.TProtocol, name string, id int16, v int32) error {
	if err := proto.WriteFieldBegin(ctx, name, thrift.I32, id); err != nil {
		return err
	}
	if err := proto.WriteI32(ctx, v); err != nil {
		return err
	}
	return proto.WriteFieldEnd(ctx)
}

// writeListBegin opens a list. The simple JSON protocol puts the element type
// and size into the array, so a bare array is written there instead.
func writeListBegin(ctx context.Context, proto thrift.TProtocol, elemType thrift.TType, size int) error {
	if p, ok := proto.(*thrift.TSimpleJSONProtocol); ok {
		return p.OutputListBegin()
	}
	return proto.WriteListBegin(ctx, elemType, size)
}

func writeListEnd(ctx context.Context, proto thrift.TProtocol) error {
	if p, ok := proto.(*thrift.TSimpleJSONProtocol); ok {
		return p.OutputListEnd()
	}
	return proto.WriteListEnd(ctx)
}

// String renders the snapshot the way the console prints a queue, at most
// limit values followed by "..." when there are more.
func (s *QueueSnapshot) String(limit int) string {
	var sb strings.Builder
	mark := " "
	if s.Current {
		mark = "*"
	}
	fmt.Fprintf(&sb, "%vq%v: [", mark, s.ID)
	for i, v := range s.Values {
		if limit > 0 && i >= limit {
			sb.WriteString(" ...")
			break
		}
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(v)
	}
	sb.WriteString("]")
	return sb.String()
}

// renderJSON encodes snapshots as a JSON array with thrift's simple JSON protocol.
func renderJSON(ctx context.Context, snaps []*QueueSnapshot) (string, error) {
	buf := thrift.NewTMemoryBuffer()
	proto := thrift.NewTSimpleJSONProtocolConf(buf, &thrift.TConfiguration{})
	if err := writeListBegin(ctx, proto, thrift.STRUCT, len(snaps)); err != nil {
		return "", thrift.PrependError("render: ", err)
	}
	for _, s := range snaps {
		if err := s.Write(ctx, proto); err != nil {
			return "", thrift.PrependError("render: ", err)
		}
	}
	if err := writeListEnd(ctx, proto); err != nil {
		return "", thrift.PrependError("render: ", err)
	}
	if err := proto.Flush(ctx); err != nil {
		return "", thrift.PrependError("render: ", err)
	}
	return buf.String(), nil
}
