package postgres

import (
	"fmt"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/franchise-gm/internal/domain/player"
)

type playerTableModel struct {
	PID            int64  `db:"pid"`
	Name           string `db:"name"`
	Born           int    `db:"born"`
	TID            int    `db:"tid"`
	Ratings        []byte `db:"ratings"`
	Draft          []byte `db:"draft"`
	ContractAmount int64  `db:"contract_amount"`
	ContractExp    int    `db:"contract_exp"`
}

// ratingsDoc and draftDoc are the JSONB shapes; the domain structs stay free
// of serialization tags.
type ratingsDoc struct {
	Season  int      `json:"season"`
	Ovr     int      `json:"ovr"`
	Pot     int      `json:"pot"`
	Skills  []string `json:"skills,omitempty"`
	Fuzz    float64  `json:"fuzz"`
	Profile string   `json:"profile,omitempty"`
}

type draftDoc struct {
	Round      int      `json:"round"`
	Pick       int      `json:"pick"`
	TID        int      `json:"tid"`
	Year       int      `json:"year"`
	Abbrev     string   `json:"abbrev"`
	TeamName   string   `json:"team_name"`
	TeamRegion string   `json:"team_region"`
	Ovr        int      `json:"ovr"`
	Pot        int      `json:"pot"`
	Skills     []string `json:"skills,omitempty"`
}

func playerToRow(p player.Player) (playerTableModel, error) {
	ratings, err := sonic.Marshal(ratingsDoc{
		Season:  p.Ratings.Season,
		Ovr:     p.Ratings.Ovr,
		Pot:     p.Ratings.Pot,
		Skills:  p.Ratings.Skills,
		Fuzz:    p.Ratings.Fuzz,
		Profile: string(p.Ratings.Profile),
	})
	if err != nil {
		return playerTableModel{}, fmt.Errorf("marshal ratings for player %d: %w", p.PID, err)
	}

	var draft []byte
	if p.Draft != nil {
		draft, err = sonic.Marshal(draftDoc{
			Round:      p.Draft.Round,
			Pick:       p.Draft.Pick,
			TID:        p.Draft.TID,
			Year:       p.Draft.Year,
			Abbrev:     p.Draft.Abbrev,
			TeamName:   p.Draft.TeamName,
			TeamRegion: p.Draft.TeamRegion,
			Ovr:        p.Draft.Ovr,
			Pot:        p.Draft.Pot,
			Skills:     p.Draft.Skills,
		})
		if err != nil {
			return playerTableModel{}, fmt.Errorf("marshal draft info for player %d: %w", p.PID, err)
		}
	}

	return playerTableModel{
		PID:            p.PID,
		Name:           p.Name,
		Born:           p.Born,
		TID:            p.TID,
		Ratings:        ratings,
		Draft:          draft,
		ContractAmount: p.Contract.Amount,
		ContractExp:    p.Contract.ExpYear,
	}, nil
}

func rowToPlayer(row playerTableModel) (player.Player, error) {
	var ratings ratingsDoc
	if err := sonic.Unmarshal(row.Ratings, &ratings); err != nil {
		return player.Player{}, fmt.Errorf("unmarshal ratings for player %d: %w", row.PID, err)
	}

	p := player.Player{
		PID:  row.PID,
		Name: row.Name,
		Born: row.Born,
		TID:  row.TID,
		Ratings: player.Ratings{
			Season:  ratings.Season,
			Ovr:     ratings.Ovr,
			Pot:     ratings.Pot,
			Skills:  ratings.Skills,
			Fuzz:    ratings.Fuzz,
			Profile: player.Profile(ratings.Profile),
		},
		Contract: player.Contract{
			Amount:  row.ContractAmount,
			ExpYear: row.ContractExp,
		},
	}

	if len(row.Draft) > 0 {
		var draft draftDoc
		if err := sonic.Unmarshal(row.Draft, &draft); err != nil {
			return player.Player{}, fmt.Errorf("unmarshal draft info for player %d: %w", row.PID, err)
		}
		p.Draft = &player.DraftInfo{
			Round:      draft.Round,
			Pick:       draft.Pick,
			TID:        draft.TID,
			Year:       draft.Year,
			Abbrev:     draft.Abbrev,
			TeamName:   draft.TeamName,
			TeamRegion: draft.TeamRegion,
			Ovr:        draft.Ovr,
			Pot:        draft.Pot,
			Skills:     draft.Skills,
		}
	}

	return p, nil
}
