package systemd

// NewWithConn returns a caller querying conn.
func NewWithConn(conn unitPropertyGetter) *DefaultCaller {
	return &DefaultCaller{conn: conn}
}
