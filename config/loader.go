package config

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"mahjong/logging"
)

// Watcher holds a live-reloadable Settings record loaded from a file,
// mirroring common/config's viper+fsnotify pattern scoped down to this
// engine's single flat settings struct.
type Watcher struct {
	mu       sync.RWMutex
	current  atomic.Pointer[Settings]
	v        *viper.Viper
	onChange func(Settings)
}

// Load reads Settings from configFile (YAML, JSON, or TOML, by extension)
// and starts watching it for changes. Call Current to read the live value.
func Load(configFile string) (*Watcher, error) {
	v := viper.New()
	v.SetConfigFile(configFile)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	defaults := Default()
	applyDefaults(v, defaults)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, err
	}
	if err := Validate(s); err != nil {
		return nil, err
	}

	w := &Watcher{v: v}
	w.current.Store(&s)

	v.WatchConfig()
	v.OnConfigChange(func(in fsnotify.Event) {
		w.reload()
	})

	return w, nil
}

func (w *Watcher) reload() {
	var s Settings
	if err := w.v.Unmarshal(&s); err != nil {
		logging.Warn("config: reload failed to unmarshal: %v", err)
		return
	}
	if err := Validate(s); err != nil {
		logging.Warn("config: reload rejected invalid settings: %v", err)
		return
	}
	w.current.Store(&s)
	w.mu.RLock()
	cb := w.onChange
	w.mu.RUnlock()
	if cb != nil {
		cb(s)
	}
	logging.Info("config: settings reloaded")
}

// Current returns the live settings snapshot.
func (w *Watcher) Current() Settings { return *w.current.Load() }

// OnChange registers a callback invoked after each successful reload.
func (w *Watcher) OnChange(fn func(Settings)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

func applyDefaults(v *viper.Viper, d Settings) {
	v.SetDefault("numPlayers", d.NumPlayers)
	v.SetDefault("gameType", string(d.GameType))
	v.SetDefault("startingScore", d.StartingScore)
	v.SetDefault("targetScore", d.TargetScore)
	v.SetDefault("winningScoreThreshold", d.WinningScoreThreshold)
	v.SetDefault("uma", d.Uma[:])
	v.SetDefault("goshashonyuThreshold", d.GoshashonyuThreshold)
	v.SetDefault("tobiEnabled", d.TobiEnabled)
	v.SetDefault("tobiThreshold", d.TobiThreshold)
	v.SetDefault("hasAkadora", d.HasAkadora)
	v.SetDefault("hasKuitan", d.HasKuitan)
	v.SetDefault("hasIppatsu", d.HasIppatsu)
	v.SetDefault("hasUradora", d.HasUradora)
	v.SetDefault("hasKanUradora", d.HasKanUradora)
	v.SetDefault("hasOmoteDora", d.HasOmoteDora)
	v.SetDefault("hasDoubleYakuman", d.HasDoubleYakuman)
	v.SetDefault("hasKazoeYakuman", d.HasKazoeYakuman)
	v.SetDefault("hasKiriageMangan", d.HasKiriageMangan)
	v.SetDefault("hasNagashiMangan", d.HasNagashiMangan)
	v.SetDefault("renhouValue", string(d.RenhouValue))
	v.SetDefault("fuForOpenPinfu", d.FuForOpenPinfu)
	v.SetDefault("fuForPinfuTsumo", d.FuForPinfuTsumo)
	v.SetDefault("hasSuukaikan", d.HasSuukaikan)
	v.SetDefault("hasSuufonRenda", d.HasSuufonRenda)
	v.SetDefault("hasSuuchaRiichi", d.HasSuuchaRiichi)
	v.SetDefault("hasKyuushuKyuuhai", d.HasKyuushuKyuuhai)
	v.SetDefault("hasTripleRonAbort", d.HasTripleRonAbort)
	v.SetDefault("hasDoubleRon", d.HasDoubleRon)
	v.SetDefault("doubleRonCount", d.DoubleRonCount)
	v.SetDefault("tripleRonCount", d.TripleRonCount)
	v.SetDefault("leftoverRiichiBets", string(d.LeftoverRiichiBets))
	v.SetDefault("enchousen", string(d.Enchousen))
	v.SetDefault("riichiCost", d.RiichiCost)
	v.SetDefault("riichiStickValue", d.RiichiStickValue)
	v.SetDefault("minWallForRiichi", d.MinWallForRiichi)
	v.SetDefault("minWallForKan", d.MinWallForKan)
	v.SetDefault("maxKansPerRound", d.MaxKansPerRound)
	v.SetDefault("honbaTsumoBonusPerLoser", d.HonbaTsumoBonusPerLoser)
	v.SetDefault("honbaRonBonus", d.HonbaRonBonus)
	v.SetDefault("notenPenaltyTotal", d.NotenPenaltyTotal)
	v.SetDefault("nagashiManganDealerPayment", d.NagashiManganDealerPayment)
	v.SetDefault("nagashiManganNonDealerPayment", d.NagashiManganNonDealerPayment)
	v.SetDefault("renchanOnAbortiveDraw", d.RenchanOnAbortiveDraw)
	v.SetDefault("renchanOnDealerTenpaiDraw", d.RenchanOnDealerTenpaiDraw)
	v.SetDefault("renchanOnDealerWin", d.RenchanOnDealerWin)
	v.SetDefault("initialBankSeconds", d.InitialBankSeconds)
	v.SetDefault("roundBonusSeconds", d.RoundBonusSeconds)
	v.SetDefault("baseTurnSeconds", d.BaseTurnSeconds)
	v.SetDefault("meldDecisionSeconds", d.MeldDecisionSeconds)
	v.SetDefault("roundAdvanceTimeoutSeconds", d.RoundAdvanceTimeoutSeconds)
	v.SetDefault("hasAgariyame", d.HasAgariyame)
}
