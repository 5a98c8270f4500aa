package models

// UserInformation is what the Account step collects. Password lives only in
// the session and is never serialised or copied into a business.
type UserInformation struct {
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Password       string `json:"-"`
	City           string `json:"city,omitempty"`
	IsExistingUser bool   `json:"is_existing_user"`
}

// UserPatch carries the Account step fields to merge; nil fields are untouched.
type UserPatch struct {
	FullName       *string `json:"full_name,omitempty"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Password       *string `json:"password,omitempty"`
	City           *string `json:"city,omitempty"`
	IsExistingUser *bool   `json:"is_existing_user,omitempty"`
}

func (p UserPatch) Apply(u UserInformation) UserInformation {
	setString(&u.FullName, p.FullName)
	setString(&u.Email, p.Email)
	setString(&u.Phone, p.Phone)
	setString(&u.Password, p.Password)
	setString(&u.City, p.City)
	setBool(&u.IsExistingUser, p.IsExistingUser)
	return u
}

// AuthUser is the profile the authentication backend returns on success.
type AuthUser struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	City     string `json:"city"`
}

// AuthResult mirrors the authentication endpoints' response envelope.
type AuthResult struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	User    *AuthUser `json:"user,omitempty"`
	Token   string    `json:"token,omitempty"`
}

// RegisterRequest is the registration payload sent to the authentication
// backend.
type RegisterRequest struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role"`
	City            string `json:"city,omitempty"`
}

// MergeAuthUser overlays the non-empty profile fields returned by the
// authentication backend onto u and drops the password.
func MergeAuthUser(u UserInformation, au *AuthUser) UserInformation {
	if au != nil {
		if au.FullName != "" {
			u.FullName = au.FullName
		}
		if au.Email != "" {
			u.Email = au.Email
		}
		if au.Phone != "" {
			u.Phone = au.Phone
		}
		if au.City != "" {
			u.City = au.City
		}
	}
	u.Password = ""
	return u
}
