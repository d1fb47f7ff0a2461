package domain

// Role 只有两种身份：农户（卖家）与消费者（买家）
type Role string

const (
	RoleFarmer   Role = "farmer"
	RoleCustomer Role = "customer"
)

func (r Role) Valid() bool { return r == RoleFarmer || r == RoleCustomer }

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`

	// 选填资料：农户用 Bio/Location/Certifications，消费者用 Address
	PhoneNumber    string   `json:"phoneNumber,omitempty"`
	Bio            string   `json:"bio,omitempty"`
	Location       string   `json:"location,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	Address        string   `json:"address,omitempty"`
}

// ProfileUpdate 部分更新；nil 字段不动（ID/Email/Role 不可变）
type ProfileUpdate struct {
	Name           *string   `json:"name,omitempty"`
	PhoneNumber    *string   `json:"phoneNumber,omitempty"`
	Bio            *string   `json:"bio,omitempty"`
	Location       *string   `json:"location,omitempty"`
	Certifications *[]string `json:"certifications,omitempty"`
	Address        *string   `json:"address,omitempty"`
}

func (p ProfileUpdate) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.PhoneNumber != nil {
		u.PhoneNumber = *p.PhoneNumber
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.Location != nil {
		u.Location = *p.Location
	}
	if p.Certifications != nil {
		u.Certifications = append([]string(nil), (*p.Certifications)...)
	}
	if p.Address != nil {
		u.Address = *p.Address
	}
}

func (u User) Clone() User {
	u.Certifications = append([]string(nil), u.Certifications...)
	return u
}
