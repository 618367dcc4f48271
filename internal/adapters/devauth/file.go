package devauth

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	domainauth "github.com/itec-institute/portal/internal/domain/auth"
)

type usersFile struct {
	Users []struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
		Role     string `yaml:"role"`
		Name     string `yaml:"name"`
		Route    string `yaml:"route"`
	} `yaml:"users"`
}

// LoadUsersFile reads a YAML user list of the form:
//
//	users:
//	  - email: admin@itec.com
//	    password: admin123
//	    role: admin
//	    name: Admin User
//	    route: admin
//
// Roles outside the enumerated set are kept verbatim; routing handles them.
func LoadUsersFile(path string) ([]User, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read users file: %w", err)
	}
	return ParseUsers(data)
}

// ParseUsers decodes the YAML user list format accepted by LoadUsersFile.
func ParseUsers(data []byte) ([]User, error) {
	var uf usersFile
	if err := yaml.Unmarshal(data, &uf); err != nil {
		return nil, fmt.Errorf("parse users file: %w", err)
	}
	users := make([]User, 0, len(uf.Users))
	for _, u := range uf.Users {
		role, _ := domainauth.ParseRole(u.Role)
		users = append(users, User{
			Email:    u.Email,
			Password: u.Password,
			Role:     role,
			Name:     u.Name,
			Route:    u.Route,
		})
	}
	return users, nil
}
