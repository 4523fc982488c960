// Package config loads the engine's flat rules-settings record, the way
// the teacher's common/config loads per-node configuration: viper for
// decoding, fsnotify for live-reload, mapstructure tags throughout.
package config

import "fmt"

// GameType selects the primary wind span.
type GameType string

const (
	Hanchan  GameType = "hanchan"
	Tonpusen GameType = "tonpusen"
)

// RenhouValue selects how a renhou win is scored.
type RenhouValue string

const (
	RenhouNone    RenhouValue = "none"
	RenhouMangan  RenhouValue = "mangan"
	RenhouYakuman RenhouValue = "yakuman"
)

// LeftoverRiichiBets selects who keeps stray riichi sticks at game end.
type LeftoverRiichiBets string

const (
	LeftoverToWinner LeftoverRiichiBets = "winner"
	LeftoverLost     LeftoverRiichiBets = "lost"
)

// EnchousenType selects sudden-death behavior past the primary wind.
type EnchousenType string

const (
	EnchousenNone        EnchousenType = "none"
	EnchousenSuddenDeath EnchousenType = "sudden_death"
)

// Settings is the flat configuration record surfacing every tunable rule
// from spec §6. Every field has a mapstructure tag so it decodes directly
// from the viper-loaded YAML/env tree.
type Settings struct {
	NumPlayers              int      `mapstructure:"numPlayers"`
	GameType                GameType `mapstructure:"gameType"`
	StartingScore           int      `mapstructure:"startingScore"`
	TargetScore             int      `mapstructure:"targetScore"`
	WinningScoreThreshold   int      `mapstructure:"winningScoreThreshold"`
	Uma                     [4]int   `mapstructure:"uma"`
	GoshashonyuThreshold    int      `mapstructure:"goshashonyuThreshold"`
	TobiEnabled             bool     `mapstructure:"tobiEnabled"`
	TobiThreshold           int      `mapstructure:"tobiThreshold"`

	HasAkadora        bool `mapstructure:"hasAkadora"`
	HasKuitan         bool `mapstructure:"hasKuitan"`
	HasIppatsu        bool `mapstructure:"hasIppatsu"`
	HasUradora        bool `mapstructure:"hasUradora"`
	HasKanUradora     bool `mapstructure:"hasKanUradora"`
	HasOmoteDora      bool `mapstructure:"hasOmoteDora"`
	HasDoubleYakuman  bool `mapstructure:"hasDoubleYakuman"`
	HasKazoeYakuman   bool `mapstructure:"hasKazoeYakuman"`
	HasKiriageMangan  bool `mapstructure:"hasKiriageMangan"`
	HasNagashiMangan  bool `mapstructure:"hasNagashiMangan"`

	RenhouValue      RenhouValue `mapstructure:"renhouValue"`
	FuForOpenPinfu   int         `mapstructure:"fuForOpenPinfu"`
	FuForPinfuTsumo  int         `mapstructure:"fuForPinfuTsumo"`

	HasSuukaikan       bool `mapstructure:"hasSuukaikan"`
	HasSuufonRenda     bool `mapstructure:"hasSuufonRenda"`
	HasSuuchaRiichi    bool `mapstructure:"hasSuuchaRiichi"`
	HasKyuushuKyuuhai  bool `mapstructure:"hasKyuushuKyuuhai"`
	HasTripleRonAbort  bool `mapstructure:"hasTripleRonAbort"`

	HasDoubleRon    bool `mapstructure:"hasDoubleRon"`
	DoubleRonCount  int  `mapstructure:"doubleRonCount"`
	TripleRonCount  int  `mapstructure:"tripleRonCount"`

	LeftoverRiichiBets LeftoverRiichiBets `mapstructure:"leftoverRiichiBets"`
	Enchousen          EnchousenType      `mapstructure:"enchousen"`

	RiichiCost       int `mapstructure:"riichiCost"`
	RiichiStickValue int `mapstructure:"riichiStickValue"`
	MinWallForRiichi int `mapstructure:"minWallForRiichi"`
	MinWallForKan    int `mapstructure:"minWallForKan"`
	MaxKansPerRound  int `mapstructure:"maxKansPerRound"`

	HonbaTsumoBonusPerLoser     int `mapstructure:"honbaTsumoBonusPerLoser"`
	HonbaRonBonus               int `mapstructure:"honbaRonBonus"`
	NotenPenaltyTotal            int `mapstructure:"notenPenaltyTotal"`
	NagashiManganDealerPayment    int `mapstructure:"nagashiManganDealerPayment"`
	NagashiManganNonDealerPayment int `mapstructure:"nagashiManganNonDealerPayment"`

	RenchanOnAbortiveDraw     bool `mapstructure:"renchanOnAbortiveDraw"`
	RenchanOnDealerTenpaiDraw bool `mapstructure:"renchanOnDealerTenpaiDraw"`
	RenchanOnDealerWin        bool `mapstructure:"renchanOnDealerWin"`

	InitialBankSeconds         int `mapstructure:"initialBankSeconds"`
	RoundBonusSeconds          int `mapstructure:"roundBonusSeconds"`
	BaseTurnSeconds            int `mapstructure:"baseTurnSeconds"`
	MeldDecisionSeconds        int `mapstructure:"meldDecisionSeconds"`
	RoundAdvanceTimeoutSeconds int `mapstructure:"roundAdvanceTimeoutSeconds"`

	HasAgariyame bool `mapstructure:"hasAgariyame"`
}

// Default returns the standard ruleset: hanchan, red fives, open tanyao,
// ippatsu, uradora, standard uma, no sudden death.
func Default() Settings {
	return Settings{
		NumPlayers:            4,
		GameType:              Hanchan,
		StartingScore:         25000,
		TargetScore:           25000,
		WinningScoreThreshold: 30000,
		Uma:                   [4]int{20, 10, -10, -20},
		GoshashonyuThreshold:  500,
		TobiEnabled:           true,
		TobiThreshold:         0,

		HasAkadora:       true,
		HasKuitan:        true,
		HasIppatsu:       true,
		HasUradora:       true,
		HasKanUradora:    true,
		HasOmoteDora:     true,
		HasDoubleYakuman: false,
		HasKazoeYakuman:  true,
		HasKiriageMangan: false,
		HasNagashiMangan: true,

		RenhouValue:     RenhouMangan,
		FuForOpenPinfu:  2,
		FuForPinfuTsumo: 2,

		HasSuukaikan:      true,
		HasSuufonRenda:    true,
		HasSuuchaRiichi:   true,
		HasKyuushuKyuuhai: true,
		HasTripleRonAbort: true,

		HasDoubleRon:   true,
		DoubleRonCount: 2,
		TripleRonCount: 3,

		LeftoverRiichiBets: LeftoverToWinner,
		Enchousen:          EnchousenNone,

		RiichiCost:       1000,
		RiichiStickValue: 1000,
		MinWallForRiichi: 4,
		MinWallForKan:    1,
		MaxKansPerRound:  4,

		HonbaTsumoBonusPerLoser:      100,
		HonbaRonBonus:                300,
		NotenPenaltyTotal:            3000,
		NagashiManganDealerPayment:    4000,
		NagashiManganNonDealerPayment: 2000,

		RenchanOnAbortiveDraw:     true,
		RenchanOnDealerTenpaiDraw: true,
		RenchanOnDealerWin:        true,

		InitialBankSeconds:         60,
		RoundBonusSeconds:          5,
		BaseTurnSeconds:            5,
		MeldDecisionSeconds:        8,
		RoundAdvanceTimeoutSeconds: 15,

		HasAgariyame: false,
	}
}

// UnsupportedSettingsError reports a settings combination §6 explicitly
// rejects.
type UnsupportedSettingsError struct {
	Reason string
}

func (e *UnsupportedSettingsError) Error() string { return "unsupported settings: " + e.Reason }

// Validate rejects num_players != 4, a malformed uma spread, and agariyame.
func Validate(s Settings) error {
	if s.NumPlayers != 4 {
		return &UnsupportedSettingsError{Reason: fmt.Sprintf("num_players must be 4, got %d", s.NumPlayers)}
	}
	sum := 0
	for _, u := range s.Uma {
		sum += u
	}
	if sum != 0 {
		return &UnsupportedSettingsError{Reason: fmt.Sprintf("uma must sum to 0, got %d", sum)}
	}
	if s.HasAgariyame {
		return &UnsupportedSettingsError{Reason: "agariyame is not supported"}
	}
	if s.DoubleRonCount < 1 || s.DoubleRonCount > 3 {
		return &UnsupportedSettingsError{Reason: fmt.Sprintf("double_ron_count out of range: %d", s.DoubleRonCount)}
	}
	return nil
}

// WindThresholds returns the unique-dealer counts at which the round wind
// advances from East to South to West (each is num_players * k).
func WindThresholds(s Settings) (eastMax, southMax, westMax int) {
	return s.NumPlayers * 1, s.NumPlayers * 2, s.NumPlayers * 3
}
