package domain

// RegistrationPolicy decides which roles an anonymous visitor may pick for
// themselves at sign-up. Trusted registration paths do not consult it.
type RegistrationPolicy struct {
	allowed map[Role]struct{}
}

func NewRegistrationPolicy(roles ...Role) RegistrationPolicy {
	p := RegistrationPolicy{allowed: make(map[Role]struct{}, len(roles))}
	for _, r := range roles {
		p.allowed[r] = struct{}{}
	}
	return p
}

// Allows reports whether self-service registration may create role.
func (p RegistrationPolicy) Allows(role Role) bool {
	_, ok := p.allowed[role]
	return ok
}

// SelectableRoles returns the allowed roles in display order.
func (p RegistrationPolicy) SelectableRoles() []Role {
	out := make([]Role, 0, len(p.allowed))
	for _, r := range Roles {
		if p.Allows(r) {
			out = append(out, r)
		}
	}
	return out
}
