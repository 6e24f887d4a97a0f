package main

import (
	"time"

	"github.com/eholt/labyrinth/log"
	"github.com/eholt/labyrinth/observer"
	"github.com/eholt/labyrinth/observer/console"
	"github.com/eholt/labyrinth/referee"
	"github.com/eholt/labyrinth/signup"
)

func signupConfig(m mainFlags, l log.Logger) signup.Config {
	refereeCfg := refereeConfig(m, l)
	cfg := signup.Config{
		Debug:         m.debug,
		Log:           l,
		WaitingPeriod: time.Duration(m.waitingPeriodSec) * time.Second,
		MinToStart:    m.minToStart,
		MaxToStart:    m.maxToStart,
		NPeriods:      m.nPeriods,
		RefereeCfg:    refereeCfg,
		Observers:     []observer.Observer{console.New(l)},
	}
	return cfg
}

func refereeConfig(m mainFlags, l log.Logger) referee.Config {
	turnTimeout := time.Duration(m.turnTimeoutMs) * time.Millisecond
	cfg := referee.Config{
		Debug:        m.debug,
		Log:          l,
		TurnTimeout:  turnTimeout,
		SetupTimeout: turnTimeout * 2,
		WinTimeout:   turnTimeout * 2,
		MaxRounds:    m.maxRounds,
	}
	return cfg
}
