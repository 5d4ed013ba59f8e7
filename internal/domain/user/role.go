package user

// RoleName 角色名
type RoleName string

const (
	RoleAdmin RoleName = "ADMIN"
	RoleUser  RoleName = "USER"
)

// AllRoles 系统内置角色
var AllRoles = []RoleName{RoleAdmin, RoleUser}

// HasAnyRole 当前角色中是否包含任一所需角色；required为空时只要求已登录
func HasAnyRole(current []RoleName, required ...RoleName) bool {
	if len(required) == 0 {
		return true
	}
	for _, have := range current {
		for _, want := range required {
			if have == want {
				return true
			}
		}
	}
	return false
}

// ParseRoles 把字符串角色转换为RoleName，忽略未知角色
func ParseRoles(names []string) []RoleName {
	roles := make([]RoleName, 0, len(names))
	for _, n := range names {
		for _, known := range AllRoles {
			if RoleName(n) == known {
				roles = append(roles, known)
				break
			}
		}
	}
	return roles
}
