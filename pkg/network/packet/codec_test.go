package packet

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/voxelnet/pkg/network/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// samplePackets 每种包至少一个样本，覆盖空字符串、空数组和空槽位
func samplePackets() []Packet {
	return []Packet{
		&KeepAlive{},
		&LoginRequest{Protocol: 14, Username: "steve", Password: "", MapSeed: -42, Dimension: 0},
		&LoginResponse{EntityID: 1298, ServerName: "", Motd: "", MapSeed: 971768181197178410, Dimension: 255},
		&Handshake{Username: "steve"},
		&HandshakeResponse{ConnectionHash: "-"},
		&ChatMessage{Message: "hello"},
		&ChatMessage{Message: ""},
		&ChatMessage{Message: "<steve> 你好"},
		&TimeUpdate{Time: 24000},
		&EntityEquipment{EntityID: 7, Slot: 0, ItemID: -1},
		&SpawnPosition{X: -12, Y: 64, Z: 300},
		&UseEntity{User: 1, Target: 2, LeftClick: true},
		&UpdateHealth{Health: 20},
		&Respawn{},
		&PlayerFlying{OnGround: true},
		&PlayerPosition{X: 1.5, Stance: 67.62, Y: 66, Z: -8.25, OnGround: false},
		&PlayerLook{Yaw: 90, Pitch: -45.5, OnGround: true},
		&PlayerPositionLook{X: 1, Y: 2, Stance: 3.62, Z: 4, Yaw: 5, Pitch: 6, OnGround: true},
		&PlayerPositionLookServer{X: 1, Stance: 3.62, Y: 2, Z: 4, Yaw: 5, Pitch: 6},
		&PlayerDigging{Status: 2, X: 10, Y: 63, Z: -10, Face: 1},
		&PlayerBlockPlace{X: 1, Y: 2, Z: 3, Direction: 4, Item: EmptySlot()},
		&PlayerBlockPlace{X: -1, Y: 255, Z: 1 << 20, Direction: 5, Item: Slot{ItemID: 5, Count: 64, Durability: 3}},
		&HoldingChange{SlotID: 8},
		&Animation{EntityID: 9, Stage: 1},
		&NamedEntitySpawn{EntityID: 3, Name: "alex", X: 1, Y: 2, Z: 3, Rotation: 4, Pitch: 5, CurrentItem: -1},
		&PickupSpawn{EntityID: 4, ItemID: 264, Count: 3, X: 1, Y: 2, Z: 3, Rotation: 4, Pitch: 5, Roll: 6},
		&CollectItem{Collected: 4, Collector: 3},
		&AddObject{EntityID: 5, Type: 10, X: 1, Y: 2, Z: 3},
		&MobSpawn{EntityID: 6, Type: 50, X: 1, Y: 2, Z: 3, Yaw: 128, Pitch: 0},
		&EntityVelocity{EntityID: 6, X: -100, Y: 0, Z: 100},
		&DestroyEntity{EntityID: 6},
		&Entity{EntityID: 6},
		&EntityRelativeMove{EntityID: 6, DX: -128, DY: 0, DZ: 127},
		&EntityLook{EntityID: 6, Yaw: 1, Pitch: 2},
		&EntityLookRelativeMove{EntityID: 6, DX: 1, DY: -1, DZ: 2, Yaw: 3, Pitch: 4},
		&EntityTeleport{EntityID: 6, X: -32, Y: 2048, Z: 32, Yaw: 5, Pitch: 6},
		&EntityStatus{EntityID: 6, Status: 2},
		&AttachEntity{EntityID: 6, VehicleID: -1},
		&PreChunk{X: -1, Z: 1, Load: true},
		&MapChunk{X: 16, Y: 0, Z: -16, SizeX: 15, SizeY: 127, SizeZ: 15, Data: []byte{0x78, 0x9c, 0x01, 0x02}},
		&MapChunk{X: 0, Y: 0, Z: 0, Data: []byte{}},
		&MultiBlockChange{ChunkX: 1, ChunkZ: 2, Size: 2, Coordinates: []int16{0x1234, -1}, Types: []byte{1, 2}, Metadata: []byte{0, 15}},
		&MultiBlockChange{ChunkX: 1, ChunkZ: 2, Size: 0, Coordinates: []int16{}, Types: []byte{}, Metadata: []byte{}},
		&BlockChange{X: 1, Y: 2, Z: 3, Type: 4, Metadata: 5},
		&Explosion{X: 1.5, Y: 64, Z: -2.5, Radius: 3, Records: []ExplosionRecord{{DX: -1, DY: 0, DZ: 1}, {DX: 2, DY: 2, DZ: -2}}},
		&Explosion{Records: []ExplosionRecord{}},
		&WindowOpen{WindowID: 1, InventoryType: 0, Title: "Chest", Slots: 27},
		&WindowClose{WindowID: 1},
		&WindowClick{WindowID: 0, Slot: 36, RightClick: false, Action: 12, Item: EmptySlot()},
		&WindowClick{WindowID: 0, Slot: 36, RightClick: true, Action: 13, Item: Slot{ItemID: 1, Count: 1, Durability: 0}},
		&SetSlot{WindowID: 0, Slot: 1, Item: Slot{ItemID: 276, Count: 1, Durability: 7}},
		&WindowItems{WindowID: 0, Items: []WideSlot{{ItemID: -1}, {ItemID: 276, Count: 1, Durability: 1561}, {ItemID: -1}}},
		&WindowItems{WindowID: 0, Items: []WideSlot{}},
		&UpdateProgressBar{WindowID: 2, ProgressBar: 0, Value: 100},
		&Transaction{WindowID: 0, Action: 12, Accepted: true},
		&SignUpdate{X: 1, Y: 64, Z: 2, Lines: [4]string{"a", "", "方块", "d"}},
		&Disconnect{Reason: "Server closed"},
	}
}

func authorOf(p Packet) Role {
	if p.Side() == SideServerToClient {
		return RoleServer
	}
	return RoleClient
}

func TestRoundTrip(t *testing.T) {
	cat := Default()

	for _, p := range samplePackets() {
		p := p
		t.Run(Name(p), func(t *testing.T) {
			frame, err := Marshal(p)
			require.NoError(t, err)
			require.Equal(t, byte(p.Opcode()), frame[0])

			got, err := cat.Unmarshal(frame, authorOf(p))
			require.NoError(t, err)
			assert.Equal(t, p, got)

			again, err := Marshal(got)
			require.NoError(t, err)
			assert.Equal(t, frame, again, "encode(decode(bytes)) must equal bytes")
		})
	}
}

func TestEveryCatalogTypeHasSample(t *testing.T) {
	covered := map[string]bool{}
	for _, p := range samplePackets() {
		covered[Name(p)] = true
	}
	for _, ctor := range Constructors() {
		assert.True(t, covered[Name(ctor())], "no sample for %s", Name(ctor()))
	}
}

func TestOverridesAreSymmetric(t *testing.T) {
	for _, ctor := range Constructors() {
		p := ctor()
		_, dec := p.(Decoder)
		_, enc := p.(Encoder)
		assert.Equal(t, dec, enc, "%s must override both directions or neither", Name(p))
	}
}

func TestBlockPlacePayloadLength(t *testing.T) {
	t.Run("empty hand", func(t *testing.T) {
		frame, err := Marshal(&PlayerBlockPlace{X: 1, Y: 2, Z: 3, Direction: 4, Item: EmptySlot()})
		require.NoError(t, err)
		assert.Len(t, frame[1:], 12)
		assert.Equal(t, []byte{0xFF, 0xFF}, frame[11:13])
	})

	t.Run("holding item", func(t *testing.T) {
		frame, err := Marshal(&PlayerBlockPlace{X: 1, Y: 2, Z: 3, Direction: 4, Item: Slot{ItemID: 5, Count: 1, Durability: 0}})
		require.NoError(t, err)
		assert.Len(t, frame[1:], 14)
		assert.Equal(t, []byte{0x00, 0x05, 0x01, 0x00}, frame[11:])
	})
}

func TestChatFrame(t *testing.T) {
	frame, err := Marshal(&ChatMessage{Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x03, 0x00, 0x05, 'h', 'e', 'l', 'l', 'o'}, frame)
}

func TestFieldOrderIsWireOrder(t *testing.T) {
	frame, err := Marshal(&LoginRequest{Protocol: 14, Username: "ab", Password: "c", MapSeed: 1, Dimension: 0xFE})
	require.NoError(t, err)

	assert.Equal(t, []byte{
		0x01,
		0x00, 0x00, 0x00, 0x0E,
		0x00, 0x02, 'a', 'b',
		0x00, 0x01, 'c',
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01,
		0xFE,
	}, frame)
}

func TestPositionVariantsDiffer(t *testing.T) {
	c2s, err := Marshal(&PlayerPositionLook{Y: 1, Stance: 2})
	require.NoError(t, err)
	s2c, err := Marshal(&PlayerPositionLookServer{Y: 1, Stance: 2})
	require.NoError(t, err)

	y := make([]byte, 8)
	copy(y, []byte{0x3F, 0xF0})
	assert.Equal(t, y, c2s[9:17], "client variant writes Y second")
	assert.Equal(t, y, s2c[17:25], "server variant writes Y third")

	echo := (&PlayerPositionLookServer{X: 1, Stance: 2, Y: 3, Z: 4, Yaw: 5, Pitch: 6, OnGround: true}).Echo()
	assert.Equal(t, &PlayerPositionLook{X: 1, Y: 3, Stance: 2, Z: 4, Yaw: 5, Pitch: 6, OnGround: true}, echo)
}

func TestDecodeTruncated(t *testing.T) {
	frame, err := Marshal(&SignUpdate{Lines: [4]string{"a", "b", "c", "d"}})
	require.NoError(t, err)

	for cut := 1; cut < len(frame); cut++ {
		_, err := Default().Unmarshal(frame[:cut], RoleClient)
		require.Error(t, err, "cut at %d", cut)
		assert.True(t, errors.Is(err, wire.ErrConnectionClosed), "cut at %d: %v", cut, err)
	}
}

func TestUnmarshalTrailingBytes(t *testing.T) {
	_, err := Default().Unmarshal([]byte{0x00, 0x01}, RoleClient)
	assert.True(t, errors.Is(err, ErrTrailingBytes))
}

func TestDecodeUsesReaderPosition(t *testing.T) {
	var buf bytes.Buffer
	for _, p := range []Packet{&ChatMessage{Message: "a"}, &HoldingChange{SlotID: 3}} {
		frame, err := Marshal(p)
		require.NoError(t, err)
		buf.Write(frame)
	}

	r := wire.NewReader(&buf)
	var got []Packet
	for i := 0; i < 2; i++ {
		op, err := r.ReadByte()
		require.NoError(t, err)
		p, err := Default().LookupIncoming(Opcode(op), RoleServer)
		require.NoError(t, err)
		require.NoError(t, Decode(r, p))
		got = append(got, p)
	}
	assert.Equal(t, []Packet{&ChatMessage{Message: "a"}, &HoldingChange{SlotID: 3}}, got)
}

func TestEncodeErrors(t *testing.T) {
	t.Run("length mismatch", func(t *testing.T) {
		_, err := Marshal(&MultiBlockChange{Size: 2, Coordinates: []int16{1}, Types: []byte{1, 2}, Metadata: []byte{1, 2}})
		assert.True(t, errors.Is(err, ErrFieldLength))
		assert.Contains(t, err.Error(), "coordinates")
	})

	t.Run("string too long", func(t *testing.T) {
		_, err := Marshal(&ChatMessage{Message: strings.Repeat("x", wire.MaxStringLength+1)})
		assert.True(t, errors.Is(err, wire.ErrStringTooLong))
	})

	t.Run("negative window item count", func(t *testing.T) {
		_, err := Default().Unmarshal([]byte{0x68, 0x00, 0xFF, 0xFF}, RoleServer)
		assert.True(t, errors.Is(err, wire.ErrInvalidLength))
	})
}

func TestFloatBits(t *testing.T) {
	frame, err := Marshal(&PlayerLook{Yaw: float32(math.Inf(1)), Pitch: -0.0})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x7F, 0x80, 0x00, 0x00}, frame[1:5])
}
