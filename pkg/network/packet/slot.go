package packet

import "github.com/lk2023060901/voxelnet/pkg/network/wire"

// EmptyItemID 空槽位的物品 ID，此时线上不带数量和耐久
const EmptyItemID int16 = -1

// Slot 物品槽位
// 放置方块、点击窗口、设置槽位使用 1 字节耐久；窗口全量更新使用 2 字节耐久，见 WideSlot
type Slot struct {
	ItemID     int16
	Count      byte
	Durability byte
}

// EmptySlot 返回空槽位
func EmptySlot() Slot {
	return Slot{ItemID: EmptyItemID}
}

func (s Slot) Empty() bool {
	return s.ItemID == EmptyItemID
}

func readSlot(r *wire.Reader) (Slot, error) {
	id, err := r.ReadInt16()
	if err != nil {
		return Slot{}, err
	}
	s := Slot{ItemID: id}
	if s.Empty() {
		return s, nil
	}
	if s.Count, err = r.ReadByte(); err != nil {
		return s, err
	}
	s.Durability, err = r.ReadByte()
	return s, err
}

func writeSlot(w *wire.Writer, s Slot) {
	w.PutInt16(s.ItemID)
	if s.Empty() {
		return
	}
	w.PutByte(s.Count)
	w.PutByte(s.Durability)
}

// WideSlot 带 2 字节耐久的物品槽位
type WideSlot struct {
	ItemID     int16
	Count      byte
	Durability int16
}

func (s WideSlot) Empty() bool {
	return s.ItemID == EmptyItemID
}

func readWideSlot(r *wire.Reader) (WideSlot, error) {
	id, err := r.ReadInt16()
	if err != nil {
		return WideSlot{}, err
	}
	s := WideSlot{ItemID: id}
	if s.Empty() {
		return s, nil
	}
	if s.Count, err = r.ReadByte(); err != nil {
		return s, err
	}
	s.Durability, err = r.ReadInt16()
	return s, err
}

func writeWideSlot(w *wire.Writer, s WideSlot) {
	w.PutInt16(s.ItemID)
	if s.Empty() {
		return
	}
	w.PutByte(s.Count)
	w.PutInt16(s.Durability)
}
