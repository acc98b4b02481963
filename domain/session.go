package domain

// SessionState is the lifecycle state of a RegistrySession.
type SessionState string

const (
	SessionUnregistered SessionState = "unregistered"
	SessionRegistered   SessionState = "registered"
	SessionTornDown     SessionState = "torn_down"
)

// RegistrySession is the mutable state of one registry user: the last own entry written, the key it
// was written under and the configuration of the last successful round. It is owned by a single
// caller and is not safe for concurrent use.
type RegistrySession struct {
	state  SessionState
	own    *NodeEntry
	ownKey string
	config RegistryConfig
}

// NewRegistrySession returns a session in the Unregistered state.
func NewRegistrySession() *RegistrySession {
	return &RegistrySession{state: SessionUnregistered}
}

// State returns the current lifecycle state.
func (s *RegistrySession) State() SessionState {
	return s.state
}

// Own returns the last own entry written, or nil if none is remembered.
func (s *RegistrySession) Own() *NodeEntry {
	return s.own
}

// OwnKey returns the store key the own entry was written under, or "".
func (s *RegistrySession) OwnKey() string {
	return s.ownKey
}

// Config returns the configuration of the last successful round.
func (s *RegistrySession) Config() RegistryConfig {
	return s.config
}

// UseConfig records the configuration resolved for the current round.
func (s *RegistrySession) UseConfig(cfg RegistryConfig) {
	s.config = cfg
}

// Remember records an own entry that has just been written under key.
func (s *RegistrySession) Remember(entry NodeEntry, key string) {
	s.own = &entry
	s.ownKey = key
	s.state = SessionRegistered
}

// TearDown forgets the own entry; the session becomes TornDown.
func (s *RegistrySession) TearDown() {
	s.own = nil
	s.ownKey = ""
	s.state = SessionTornDown
}
