package session

import (
	"sync"

	"github.com/cockroachdb/errors"
)

// Manager 在线会话管理器
type Manager struct {
	mu         sync.RWMutex
	sessions   map[string]*Player // sessionID -> Player
	nameIndex  map[string]*Player // username -> Player，仅已登录
	maxPlayers int
	nextEntity int32
}

// NewManager 创建管理器，maxPlayers <= 0 表示不限制
func NewManager(maxPlayers int) *Manager {
	return &Manager{
		sessions:   make(map[string]*Player),
		nameIndex:  make(map[string]*Player),
		maxPlayers: maxPlayers,
	}
}

// Register 注册新连接
func (m *Manager) Register(p *Player) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[p.ID()] = p
}

// Unregister 注销会话，返回是否是已登录的玩家
func (m *Manager) Unregister(sessionID string) (*Player, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.sessions[sessionID]
	if !ok {
		return nil, false
	}
	delete(m.sessions, sessionID)

	if p.LoggedIn() {
		if cur, ok := m.nameIndex[p.Username()]; ok && cur == p {
			delete(m.nameIndex, p.Username())
		}
		return p, true
	}
	return p, false
}

// Login 标记登录并分配实体 ID
// 同名玩家已在线时返回被顶替的旧会话，由调用方踢出
func (m *Manager) Login(sessionID, username string) (entityID int32, replaced *Player, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.sessions[sessionID]
	if !ok {
		return 0, nil, ErrSessionNotFound
	}
	if p.LoggedIn() {
		return 0, nil, ErrAlreadyLoggedIn
	}

	replaced = m.nameIndex[username]
	if replaced == nil && m.maxPlayers > 0 && len(m.nameIndex) >= m.maxPlayers {
		return 0, nil, errors.Wrapf(ErrServerFull, "%d/%d", len(m.nameIndex), m.maxPlayers)
	}

	m.nextEntity++
	entityID = m.nextEntity

	p.mu.Lock()
	p.username = username
	p.entityID = entityID
	p.loggedIn = true
	p.mu.Unlock()

	if replaced != nil {
		replaced.mu.Lock()
		replaced.loggedIn = false
		replaced.mu.Unlock()
	}
	m.nameIndex[username] = p
	return entityID, replaced, nil
}

// Get 获取会话
func (m *Manager) Get(sessionID string) (*Player, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.sessions[sessionID]
	return p, ok
}

// GetByName 根据用户名获取已登录玩家
func (m *Manager) GetByName(username string) (*Player, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.nameIndex[username]
	return p, ok
}

// Online 已登录玩家快照
func (m *Manager) Online() []*Player {
	m.mu.RLock()
	defer m.mu.RUnlock()

	players := make([]*Player, 0, len(m.nameIndex))
	for _, p := range m.nameIndex {
		players = append(players, p)
	}
	return players
}

// All 全部连接快照，包括未登录的
func (m *Manager) All() []*Player {
	m.mu.RLock()
	defer m.mu.RUnlock()

	players := make([]*Player, 0, len(m.sessions))
	for _, p := range m.sessions {
		players = append(players, p)
	}
	return players
}

// Count 获取当前连接总数
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// OnlineCount 已登录玩家数
func (m *Manager) OnlineCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.nameIndex)
}
