package team

// Resolver answers which teams a player belongs to, feeding the
// registration visibility union: teams they captain plus teams whose
// member list carries their mobile number or player id.
//
// Membership matching is exact-equality over a loosely shaped member
// list, not a foreign key. A member record missing both identifiers can
// never match; false negatives are a known limitation carried over from
// the data model, not something to patch around here.
// TeamSource is the narrow read surface the resolver needs.
type TeamSource interface {
	GetTeamsByCaptain(captainID uint) ([]Team, error)
	ListAll() ([]Team, error)
}

type Resolver struct {
	repo TeamSource
}

func NewResolver(repo TeamSource) *Resolver {
	return &Resolver{repo: repo}
}

// TeamsOwnedBy returns ids of teams captained by the user.
func (r *Resolver) TeamsOwnedBy(userID uint) ([]uint, error) {
	teams, err := r.repo.GetTeamsByCaptain(userID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(teams))
	for _, t := range teams {
		ids = append(ids, t.ID)
	}
	return ids, nil
}

// TeamsContainingMember scans the full team set for member entries
// matching the given mobile or player id. Low volume by design; there is
// no index over the JSONB member list.
func (r *Resolver) TeamsContainingMember(mobile, playerID string) ([]uint, error) {
	if mobile == "" && playerID == "" {
		return nil, nil
	}
	teams, err := r.repo.ListAll()
	if err != nil {
		return nil, err
	}
	var ids []uint
	for _, t := range teams {
		if memberMatches(t.Members, mobile, playerID) {
			ids = append(ids, t.ID)
		}
	}
	return ids, nil
}

// VisibleTeamIDs is the deduplicated union of captained and joined teams.
func (r *Resolver) VisibleTeamIDs(userID uint, mobile, playerID string) ([]uint, error) {
	owned, err := r.TeamsOwnedBy(userID)
	if err != nil {
		return nil, err
	}
	joined, err := r.TeamsContainingMember(mobile, playerID)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool, len(owned)+len(joined))
	var ids []uint
	for _, id := range append(owned, joined...) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func memberMatches(members MemberList, mobile, playerID string) bool {
	for _, m := range members {
		if mobile != "" && m.Mobile != "" && m.Mobile == mobile {
			return true
		}
		if playerID != "" && m.PlayerID != "" && m.PlayerID == playerID {
			return true
		}
	}
	return false
}
