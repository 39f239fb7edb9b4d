package model

// Rank is the officer rank, stored as text.
type Rank string

const (
	RankEnsign     Rank = "ENSIGN"
	RankLieutenant Rank = "LIEUTENANT"
	RankCommander  Rank = "COMMANDER"
	RankCaptain    Rank = "CAPTAIN"
	RankCommodore  Rank = "COMMODORE"
	RankAdmiral    Rank = "ADMIRAL"
)

// Ranks lists the valid ranks in ascending order of seniority.
var Ranks = []Rank{
	RankEnsign, RankLieutenant, RankCommander,
	RankCaptain, RankCommodore, RankAdmiral,
}

// IsValidRank checks rank against the known set.
func IsValidRank(rank Rank) bool {
	for _, r := range Ranks {
		if r == rank {
			return true
		}
	}
	return false
}

// Officer is the database entity for the officers table. ID is zero before
// persistence and assigned by the store on first save.
type Officer struct {
	ID        int64  `db:"id"`
	Rank      Rank   `db:"rank"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
}
