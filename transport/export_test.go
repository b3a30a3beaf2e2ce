package transport

// PendingCalls returns the number of calls waiting for their response
func (s *Stream) PendingCalls() int {
	sess := s.session.Load()
	if sess == nil {
		return 0
	}
	return int(sess.pending.Load())
}
