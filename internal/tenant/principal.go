package tenant

// Roles carried in the JWT, mirroring usuario.tipo_usuario.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "funcionario"
)

// Principal is the authenticated caller as seen by the tenant resolver.
// AdminID is only meaningful for employee accounts (the admin that owns
// them); admins are their own tenant.
type Principal struct {
	UserID        int64
	Role          string
	AdminID       int64
	Authenticated bool
}
