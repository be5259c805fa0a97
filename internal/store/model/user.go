package model

type Role string

const (
	RoleRequester Role = "requester"
	RoleProvider  Role = "provider"
	RoleSystem    Role = "system"
)

func (r Role) IsValid() bool {
	return r == RoleRequester || r == RoleProvider || r == RoleSystem
}

// User is the projection of an identity the job lifecycle needs. Available
// is owned by the availability reconciler.
type User struct {
	ID        string `gorm:"primaryKey;column:id;type:VARCHAR(255)"`
	Role      Role   `gorm:"column:role;type:VARCHAR(20);not null;index"`
	Name      string `gorm:"column:name;type:VARCHAR(255)"`
	Available bool   `gorm:"column:available;not null;default:true"`
}

type UserList []User
