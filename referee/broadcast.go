package referee

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// broadcastSetup concurrently calls setUp on every surviving player
// with the full board and their own seat/goal, waits for every
// response (or the shared deadline, whichever is sooner), then ejects
// everyone who failed to acknowledge. Ejection order is rotated to
// start from the game's active index rather than array index zero,
// so a sweep of ejections affects players in the same order the game
// would otherwise have visited them.
func (r *Referee) broadcastSetup(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, r.setupTimeout)
	defer cancel()

	failed := make([]error, len(r.entries))
	var g errgroup.Group
	for i, entry := range r.entries {
		i, entry := i, entry
		g.Go(func() error {
			idx := i
			redacted := r.state.CopyRedacted(&idx)
			goal := r.state.Players[i].Goal
			failed[i] = entry.Player.SetUp(ctx, redacted, goal)
			return nil
		})
	}
	g.Wait()

	r.ejectRotated(failed)
}

// broadcastWin concurrently calls win on every surviving player,
// telling each whether its name appears in winnerNames, then ejects
// every player that failed to acknowledge and returns winnerNames with
// any such player removed: a winner that fails to ack win() is ejected
// and does not count as a winner.
func (r *Referee) broadcastWin(ctx context.Context, winnerNames []string) []string {
	ctx, cancel := context.WithTimeout(ctx, r.winTimeout)
	defer cancel()

	winnerSet := make(map[string]struct{}, len(winnerNames))
	for _, n := range winnerNames {
		winnerSet[n] = struct{}{}
	}

	failed := make([]error, len(r.entries))
	var g errgroup.Group
	for i, entry := range r.entries {
		i, entry := i, entry
		g.Go(func() error {
			_, didWin := winnerSet[entry.Name]
			failed[i] = entry.Player.Win(ctx, didWin)
			return nil
		})
	}
	g.Wait()

	for i, entry := range r.entries {
		if failed[i] != nil {
			delete(winnerSet, entry.Name)
		}
	}
	r.ejectRotated(failed)

	survivors := make([]string, 0, len(winnerSet))
	for _, n := range winnerNames {
		if _, ok := winnerSet[n]; ok {
			survivors = append(survivors, n)
		}
	}
	return survivors
}

// ejectRotated ejects every entry (identified by the snapshot taken
// before this broadcast) whose call failed, walking from the state's
// active index rather than array index zero. Entries are looked up
// by name rather than original index because ejectAt mutates
// r.entries, shifting every later index down by one.
func (r *Referee) ejectRotated(failed []error) {
	n := len(failed)
	if n == 0 {
		return
	}
	original := append([]Entry(nil), r.entries...)
	start := r.state.ActiveIndex
	if start >= n {
		start = 0
	}
	for k := 0; k < n; k++ {
		orig := (start + k) % n
		if failed[orig] == nil {
			continue
		}
		if idx := r.indexOfEntry(original[orig].Name); idx >= 0 {
			r.ejectAt(idx, failed[orig])
		}
	}
}

// indexOfEntry returns the current index of the entry with the given
// name, or -1 if it has already been ejected.
func (r *Referee) indexOfEntry(name string) int {
	for i, e := range r.entries {
		if e.Name == name {
			return i
		}
	}
	return -1
}
