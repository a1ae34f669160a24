package domain

type ctxKey string

const (
	RequesterIdCtxKey     ctxKey = "hs-requesterId"
	RequesterClientCtxKey ctxKey = "hs-requesterClient"
)

const (
	AuthorizationHeader = "authorization"
	RequestIdHeader     = "x-request-id"
)

// ParentKind identifies which entity owns a feature catalog.
type ParentKind int

const (
	KindUnknown ParentKind = iota
	KindBuilding
	KindHousingUnit
)

func (k ParentKind) String() string {
	switch k {
	case KindBuilding:
		return "Building"
	case KindHousingUnit:
		return "Housing unit"
	default:
		return "Unknown"
	}
}

// Slug is the lowercase form used in metric labels and event channels.
func (k ParentKind) Slug() string {
	switch k {
	case KindBuilding:
		return "building"
	case KindHousingUnit:
		return "housing-unit"
	default:
		return "unknown"
	}
}
