package packet

import (
	"slices"
	"sync"

	"github.com/cockroachdb/errors"
)

// Constructor 创建零值包实例
type Constructor func() Packet

type entry struct {
	ctor Constructor
	name string
}

// Catalog 两张按发送方角色区分的 opcode 表
// 客户端表 = Shared + ClientToServer，由服务端会话解码；
// 服务端表 = Shared + ServerToClient，由客户端会话解码。
// 构建后只读，可被多个会话并发使用。
type Catalog struct {
	tables [2]map[Opcode]entry
}

// NewCatalog 根据每个构造函数原型的 (opcode, side) 建表
// 同一张表里出现重复 opcode 时返回 ErrDuplicatePacket
func NewCatalog(ctors ...Constructor) (*Catalog, error) {
	c := &Catalog{}
	for i := range c.tables {
		c.tables[i] = make(map[Opcode]entry)
	}

	for _, ctor := range ctors {
		proto := ctor()
		e := entry{ctor: ctor, name: Name(proto)}
		for _, author := range []Role{RoleClient, RoleServer} {
			if !proto.Side().AuthoredBy(author) {
				continue
			}
			table := c.tables[author]
			if prev, exists := table[proto.Opcode()]; exists {
				return nil, errors.Wrapf(ErrDuplicatePacket, "opcode %s in %s table: %s and %s",
					proto.Opcode(), author, prev.name, e.name)
			}
			table[proto.Opcode()] = e
		}
	}
	return c, nil
}

func (c *Catalog) table(author Role) map[Opcode]entry {
	if int(author) >= len(c.tables) {
		return nil
	}
	return c.tables[author]
}

// MustNewCatalog 同 NewCatalog，出错时 panic
func MustNewCatalog(ctors ...Constructor) *Catalog {
	c, err := NewCatalog(ctors...)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup 返回 author 发送的 op 对应的新实例；不存在时返回 *DesyncError
func (c *Catalog) Lookup(op Opcode, author Role) (Packet, error) {
	e, ok := c.table(author)[op]
	if !ok {
		return nil, &DesyncError{Opcode: op, Author: author}
	}
	return e.ctor(), nil
}

// LookupIncoming 以 session 的身份查找收到的包，即查对端的表
func (c *Catalog) LookupIncoming(op Opcode, session Role) (Packet, error) {
	return c.Lookup(op, session.Peer())
}

// Has 判断 author 的表里是否有 op
func (c *Catalog) Has(op Opcode, author Role) bool {
	_, ok := c.table(author)[op]
	return ok
}

// NameOf 返回表中 op 对应的包名，不存在时返回 opcode 文本
func (c *Catalog) NameOf(op Opcode, author Role) string {
	if e, ok := c.table(author)[op]; ok {
		return e.name
	}
	return op.String()
}

// Opcodes 返回 author 表中的全部 opcode，升序
func (c *Catalog) Opcodes(author Role) []Opcode {
	ops := make([]Opcode, 0, len(c.table(author)))
	for op := range c.table(author) {
		ops = append(ops, op)
	}
	slices.Sort(ops)
	return ops
}

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// Default 返回由 Constructors() 构建的全局目录，只构建一次
func Default() *Catalog {
	defaultCatalogOnce.Do(func() {
		defaultCatalog = MustNewCatalog(Constructors()...)
	})
	return defaultCatalog
}
