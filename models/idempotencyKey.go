package models

// Create endpoints behind a network boundary need idempotency keys so a
// client retry does not insert a duplicate row. The registry keys on
// (entity, client key) and replays the originally created record.

// IdempotentCreate runs create at most once per (entity, key): a repeated
// key replays the remembered record. The whole lookup-create-remember
// sequence holds the registry lock, so concurrent retries with the same key
// cannot both reach create. An empty key always creates.
func (s *Store) IdempotentCreate(entity string, key string, create func() (any, error)) (any, error) {
	if key == "" {
		return create()
	}

	s.idemMu.Lock()
	defer s.idemMu.Unlock()

	if record, ok := s.idempotentCreates[entity+"|"+key]; ok {
		return record, nil
	}
	record, err := create()
	if err != nil {
		return nil, err
	}
	s.idempotentCreates[entity+"|"+key] = record
	return record, nil
}

// LookupIdempotentCreate returns the record remembered for the key, if any.
func (s *Store) LookupIdempotentCreate(entity string, key string) (any, bool) {
	if key == "" {
		return nil, false
	}
	s.idemMu.Lock()
	defer s.idemMu.Unlock()

	record, ok := s.idempotentCreates[entity+"|"+key]
	return record, ok
}

// RememberIdempotentCreate records the outcome of a create for later replay.
func (s *Store) RememberIdempotentCreate(entity string, key string, record any) {
	if key == "" {
		return
	}
	s.idemMu.Lock()
	defer s.idemMu.Unlock()

	s.idempotentCreates[entity+"|"+key] = record
}
