package team

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// MemberRef identifies a team member by whatever the captain knew at
// team creation: a mobile number, a player id, or both. Either
// identifier may be empty; resolution against real accounts is
// best-effort (see the resolver).
type MemberRef struct {
	Name     string `json:"name"`
	Mobile   string `json:"mobile,omitempty"`
	PlayerID string `json:"player_id,omitempty"`
	Age      string `json:"age,omitempty"`
}

// MemberList is the JSONB members column.
type MemberList []MemberRef

func (m MemberList) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *MemberList) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("MemberList: expected []byte, got %T", src)
	}
	return json.Unmarshal(b, m)
}

// Team is a named group owned by exactly one captain, who must hold the
// player role. Only the captain may update or delete it.
type Team struct {
	gorm.Model
	Name          string     `gorm:"not null" json:"team_name"`
	Sport         string     `gorm:"index" json:"sport"`
	CaptainID     uint       `gorm:"index;not null" json:"captain_id"`
	CaptainName   string     `json:"captain_name"`
	CaptainMobile string     `json:"captain_mobile"`
	Members       MemberList `gorm:"type:jsonb" json:"members"`
}

type CreateTeamRequest struct {
	Name    string      `json:"team_name" binding:"required"`
	Sport   string      `json:"sport"`
	Members []MemberRef `json:"members"`
}

type UpdateTeamRequest struct {
	Name    string      `json:"team_name" binding:"required"`
	Sport   string      `json:"sport"`
	Members []MemberRef `json:"members"`
}
