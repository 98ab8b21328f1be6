package packet

import (
	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/voxelnet/pkg/network/wire"
)

type WindowOpen struct {
	WindowID      byte
	InventoryType byte
	Title         string
	Slots         byte
}

func (*WindowOpen) Opcode() Opcode { return OpWindowOpen }
func (*WindowOpen) Side() Side     { return SideServerToClient }
func (p *WindowOpen) Fields() []Field {
	return []Field{
		Byte("window_id", &p.WindowID),
		Byte("inventory_type", &p.InventoryType),
		String("title", &p.Title),
		Byte("slots", &p.Slots),
	}
}

type WindowClose struct {
	WindowID byte
}

func (*WindowClose) Opcode() Opcode { return OpWindowClose }
func (*WindowClose) Side() Side     { return SideShared }
func (p *WindowClose) Fields() []Field {
	return []Field{Byte("window_id", &p.WindowID)}
}

// WindowClick 点击窗口槽位，Action 为事务号，服务端以 Transaction 确认
type WindowClick struct {
	WindowID   byte
	Slot       int16
	RightClick bool
	Action     int16
	Item       Slot
}

func (*WindowClick) Opcode() Opcode { return OpWindowClick }
func (*WindowClick) Side() Side     { return SideClientToServer }
func (p *WindowClick) Fields() []Field {
	return []Field{
		Byte("window_id", &p.WindowID),
		Int16("slot", &p.Slot),
		Bool("right_click", &p.RightClick),
		Int16("action", &p.Action),
	}
}

func (p *WindowClick) DecodePayload(r *wire.Reader) error {
	if err := DecodeFields(r, p.Fields()); err != nil {
		return err
	}
	item, err := readSlot(r)
	if err != nil {
		return errors.Wrap(err, "decode field item")
	}
	p.Item = item
	return nil
}

func (p *WindowClick) EncodePayload(w *wire.Writer) error {
	if err := EncodeFields(w, p.Fields()); err != nil {
		return err
	}
	writeSlot(w, p.Item)
	return nil
}

// SetSlot 服务端更新单个槽位
type SetSlot struct {
	WindowID byte
	Slot     int16
	Item     Slot
}

func (*SetSlot) Opcode() Opcode { return OpSetSlot }
func (*SetSlot) Side() Side     { return SideServerToClient }
func (p *SetSlot) Fields() []Field {
	return []Field{Byte("window_id", &p.WindowID), Int16("slot", &p.Slot)}
}

func (p *SetSlot) DecodePayload(r *wire.Reader) error {
	if err := DecodeFields(r, p.Fields()); err != nil {
		return err
	}
	item, err := readSlot(r)
	if err != nil {
		return errors.Wrap(err, "decode field item")
	}
	p.Item = item
	return nil
}

func (p *SetSlot) EncodePayload(w *wire.Writer) error {
	if err := EncodeFields(w, p.Fields()); err != nil {
		return err
	}
	writeSlot(w, p.Item)
	return nil
}

// WindowItems 窗口全量内容，槽位逐个编码，空槽只占 2 字节
type WindowItems struct {
	WindowID byte
	Items    []WideSlot
}

func (*WindowItems) Opcode() Opcode { return OpWindowItems }
func (*WindowItems) Side() Side     { return SideServerToClient }
func (p *WindowItems) Fields() []Field {
	return []Field{Byte("window_id", &p.WindowID)}
}

func (p *WindowItems) DecodePayload(r *wire.Reader) error {
	if err := DecodeFields(r, p.Fields()); err != nil {
		return err
	}
	n, err := r.ReadInt16()
	if err != nil {
		return errors.Wrap(err, "decode field count")
	}
	if n < 0 {
		return errors.Wrapf(wire.ErrInvalidLength, "item count %d", n)
	}
	p.Items = make([]WideSlot, n)
	for i := range p.Items {
		if p.Items[i], err = readWideSlot(r); err != nil {
			return errors.Wrapf(err, "decode item %d", i)
		}
	}
	return nil
}

func (p *WindowItems) EncodePayload(w *wire.Writer) error {
	if len(p.Items) > 1<<15-1 {
		return errors.Wrapf(ErrFieldLength, "%d items", len(p.Items))
	}
	if err := EncodeFields(w, p.Fields()); err != nil {
		return err
	}
	w.PutInt16(int16(len(p.Items)))
	for _, item := range p.Items {
		writeWideSlot(w, item)
	}
	return nil
}

type UpdateProgressBar struct {
	WindowID    byte
	ProgressBar int16
	Value       int16
}

func (*UpdateProgressBar) Opcode() Opcode { return OpUpdateProgressBar }
func (*UpdateProgressBar) Side() Side     { return SideServerToClient }
func (p *UpdateProgressBar) Fields() []Field {
	return []Field{
		Byte("window_id", &p.WindowID),
		Int16("progress_bar", &p.ProgressBar),
		Int16("value", &p.Value),
	}
}

// Transaction 确认或拒绝 WindowClick 的事务号
type Transaction struct {
	WindowID byte
	Action   int16
	Accepted bool
}

func (*Transaction) Opcode() Opcode { return OpTransaction }
func (*Transaction) Side() Side     { return SideShared }
func (p *Transaction) Fields() []Field {
	return []Field{
		Byte("window_id", &p.WindowID),
		Int16("action", &p.Action),
		Bool("accepted", &p.Accepted),
	}
}
