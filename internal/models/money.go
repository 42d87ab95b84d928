package models

// Money is an amount in whole units of the booking currency (BDT carries no
// minor unit in supplier responses).
type Money int64

type PaxType string

const (
	PaxAdult  PaxType = "ADT"
	PaxChild  PaxType = "CHD"
	PaxInfant PaxType = "INF"
)

func ParsePaxType(s string) PaxType {
	switch s {
	case "ADT", "Adult", "adult":
		return PaxAdult
	case "CHD", "Child", "child":
		return PaxChild
	case "INF", "Infant", "infant":
		return PaxInfant
	}
	return PaxAdult
}

type Role string

const (
	RoleUser  Role = "USER"
	RoleAgent Role = "AGENT"
)

// NormalizeRole maps anything that is not a recognized role to USER, so an
// anonymous or malformed caller always prices as a regular customer.
func NormalizeRole(s string) Role {
	switch Role(s) {
	case RoleAgent:
		return RoleAgent
	default:
		return RoleUser
	}
}
