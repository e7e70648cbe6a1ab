package repositories

// Stores bundles the providers an entity repository can be built on.
type Stores struct {
	Postgres pgProvider
	Remote   remoteProvider
}

func NewZoneRepository(b Backend, s Stores) ZoneRepository {
	if b == BackendRemote {
		return NewZoneRemoteRepository(s.Remote)
	}
	return NewZonePostgresRepository(s.Postgres)
}

func NewProjectRepository(b Backend, s Stores) ProjectRepository {
	if b == BackendRemote {
		return NewProjectRemoteRepository(s.Remote)
	}
	return NewProjectPostgresRepository(s.Postgres)
}

func NewUnitRepository(b Backend, s Stores) UnitRepository {
	if b == BackendRemote {
		return NewUnitRemoteRepository(s.Remote)
	}
	return NewUnitPostgresRepository(s.Postgres)
}

func NewUserRepository(b Backend, s Stores) UserRepository {
	if b == BackendRemote {
		return NewUserRemoteRepository(s.Remote)
	}
	return NewUserPostgresRepository(s.Postgres)
}

func NewConversationRepository(b Backend, s Stores) ConversationRepository {
	if b == BackendRemote {
		return NewConversationRemoteRepository(s.Remote)
	}
	return NewConversationPostgresRepository(s.Postgres)
}
