package domain

// Identity is the verified caller of a request.
type Identity struct {
	UserID  int
	IsAdmin bool
}

// CanAccess reports whether the caller may act on a record owned by ownerID.
func (i Identity) CanAccess(ownerID int) bool {
	return i.IsAdmin || i.UserID == ownerID
}
