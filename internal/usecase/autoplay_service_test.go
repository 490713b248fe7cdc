package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/franchise-gm/internal/domain/league"
	"github.com/riskibarqy/franchise-gm/internal/domain/player"
	"github.com/riskibarqy/franchise-gm/internal/infrastructure/repository/memory"
)

func TestRunUntilUserOrEndStopsAtUserTurn(t *testing.T) {
	fx := newDraftFixture(t, nil)
	ctx := context.Background()
	prepDraft(t, fx)

	// The seed league slots the user team at pick 15 of round 1: it made
	// the playoffs with the worst record, and lottery winners only come
	// from the fourteen non-playoff teams.
	before, err := fx.leagueRepo.GetState(ctx)
	if err != nil {
		t.Fatalf("get state: %v", err)
	}

	drafted, err := fx.autoSvc.RunUntilUserOrEnd(ctx)
	if err != nil {
		t.Fatalf("RunUntilUserOrEnd: %v", err)
	}
	if len(drafted) != 14 {
		t.Fatalf("autoplay drafted %d players, want 14", len(drafted))
	}

	order, err := fx.orderRepo.GetOrder(ctx)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if len(order) != 46 {
		t.Fatalf("order has %d picks left, want 46", len(order))
	}
	head := order[0]
	if head.Round != 1 || head.Pick != 15 || head.TID != memory.SeedUserTID {
		t.Fatalf("head pick %+v, want round 1 pick 15 for team %d", head, memory.SeedUserTID)
	}

	// Every auto-drafted player left the pool and joined a roster.
	for _, pid := range drafted {
		p, ok, err := fx.playerRepo.Get(ctx, pid)
		if err != nil || !ok {
			t.Fatalf("drafted player %d: ok=%v err=%v", pid, ok, err)
		}
		if p.TID == player.TeamUndrafted || p.TID == memory.SeedUserTID {
			t.Fatalf("player %d on team %d after autoplay", pid, p.TID)
		}
	}

	// Still the user's turn: the phase holds and the change marker moved.
	after, err := fx.leagueRepo.GetState(ctx)
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if after.Phase != league.PhaseDraft {
		t.Fatalf("phase %s, want %s", after.Phase, league.PhaseDraft)
	}
	if !after.LastChange.After(before.LastChange) {
		t.Fatalf("change marker did not advance: %v -> %v", before.LastChange, after.LastChange)
	}
}

func TestRunUntilUserOrEndResumesAfterUserPick(t *testing.T) {
	fx := newDraftFixture(t, nil)
	ctx := context.Background()
	prepDraft(t, fx)

	first, err := fx.autoSvc.RunUntilUserOrEnd(ctx)
	if err != nil {
		t.Fatalf("first autoplay: %v", err)
	}

	// The user drafts at the head, then the caller consumes the pick.
	order, err := fx.orderRepo.GetOrder(ctx)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	prospects, err := fx.classSvc.ListProspects(ctx)
	if err != nil {
		t.Fatalf("ListProspects: %v", err)
	}
	if _, err := fx.pickSvc.SelectPlayer(ctx, order[0], prospects[0].PID); err != nil {
		t.Fatalf("user pick: %v", err)
	}
	if err := fx.orderSvc.SetOrder(ctx, order[1:]); err != nil {
		t.Fatalf("consume user pick: %v", err)
	}

	// Two rounds mean the user turns up once more; a third run finishes
	// the draft and moves the season on.
	second, err := fx.autoSvc.RunUntilUserOrEnd(ctx)
	if err != nil {
		t.Fatalf("second autoplay: %v", err)
	}
	order, err = fx.orderRepo.GetOrder(ctx)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if order[0].Round != 2 || order[0].TID != memory.SeedUserTID {
		t.Fatalf("head pick %+v, want the user's round 2 slot", order[0])
	}

	prospects, err = fx.classSvc.ListProspects(ctx)
	if err != nil {
		t.Fatalf("ListProspects: %v", err)
	}
	if _, err := fx.pickSvc.SelectPlayer(ctx, order[0], prospects[0].PID); err != nil {
		t.Fatalf("user round 2 pick: %v", err)
	}
	if err := fx.orderSvc.SetOrder(ctx, order[1:]); err != nil {
		t.Fatalf("consume user pick: %v", err)
	}

	third, err := fx.autoSvc.RunUntilUserOrEnd(ctx)
	if err != nil {
		t.Fatalf("third autoplay: %v", err)
	}

	total := len(first) + len(second) + len(third) + 2
	if total != fx.settings.NumTeams*fx.settings.NumRounds {
		t.Fatalf("drafted %d players across the draft, want %d",
			total, fx.settings.NumTeams*fx.settings.NumRounds)
	}

	order, err = fx.orderRepo.GetOrder(ctx)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if len(order) != 0 {
		t.Fatalf("order still holds %d picks", len(order))
	}

	state, err := fx.leagueRepo.GetState(ctx)
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if state.Phase != league.PhaseAfterDraft {
		t.Fatalf("phase %s, want %s", state.Phase, league.PhaseAfterDraft)
	}
}

func TestRunUntilUserOrEndCompletesWithoutUserTeam(t *testing.T) {
	fx := newDraftFixture(t, nil)
	ctx := context.Background()
	prepDraft(t, fx)

	// A spectator session: the user controls no team in the order.
	state, err := fx.leagueRepo.GetState(ctx)
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	state.UserTID = -1
	if err := fx.leagueRepo.PutState(ctx, state); err != nil {
		t.Fatalf("put state: %v", err)
	}

	drafted, err := fx.autoSvc.RunUntilUserOrEnd(ctx)
	if err != nil {
		t.Fatalf("RunUntilUserOrEnd: %v", err)
	}
	if want := fx.settings.NumTeams * fx.settings.NumRounds; len(drafted) != want {
		t.Fatalf("autoplay drafted %d players, want %d", len(drafted), want)
	}

	state, err = fx.leagueRepo.GetState(ctx)
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if state.Phase != league.PhaseAfterDraft {
		t.Fatalf("phase %s, want %s", state.Phase, league.PhaseAfterDraft)
	}
}

func TestRunUntilUserOrEndEmptyPool(t *testing.T) {
	fx := newDraftFixture(t, nil)
	ctx := context.Background()

	// Order exists but no class was ever generated.
	if _, err := fx.orderSvc.GenerateOrder(ctx); err != nil {
		t.Fatalf("GenerateOrder: %v", err)
	}
	state, err := fx.leagueRepo.GetState(ctx)
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	state.UserTID = -1
	if err := fx.leagueRepo.PutState(ctx, state); err != nil {
		t.Fatalf("put state: %v", err)
	}

	drafted, err := fx.autoSvc.RunUntilUserOrEnd(ctx)
	if !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("got %v, want ErrInvariantViolation", err)
	}
	if len(drafted) != 0 {
		t.Fatalf("drafted %d players from an empty pool", len(drafted))
	}
}

func TestRunUntilUserOrEndKeepsHeadOnFailure(t *testing.T) {
	fx := newDraftFixture(t, nil)
	ctx := context.Background()
	prepDraft(t, fx)

	// Hand every prospect to a roster behind the sequencer's back, so the
	// first selection fails and the head pick must survive untouched.
	prospects, err := fx.playerRepo.ListByTeam(ctx, player.TeamUndrafted)
	if err != nil {
		t.Fatalf("list prospects: %v", err)
	}
	keep := prospects[0]
	for _, p := range prospects {
		p.TID = 0
		if err := fx.playerRepo.Put(ctx, p); err != nil {
			t.Fatalf("put player: %v", err)
		}
	}
	keep.TID = player.TeamUndrafted
	if err := fx.playerRepo.Put(ctx, keep); err != nil {
		t.Fatalf("restore prospect: %v", err)
	}

	// One prospect, fourteen auto picks before the user: the second
	// iteration finds an empty pool and halts with the head preserved.
	orderBefore, err := fx.orderRepo.GetOrder(ctx)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	drafted, err := fx.autoSvc.RunUntilUserOrEnd(ctx)
	if !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("got %v, want ErrInvariantViolation", err)
	}
	if len(drafted) != 1 {
		t.Fatalf("drafted %d players, want 1", len(drafted))
	}

	orderAfter, err := fx.orderRepo.GetOrder(ctx)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if len(orderAfter) != len(orderBefore)-1 {
		t.Fatalf("order has %d picks, want %d", len(orderAfter), len(orderBefore)-1)
	}
	if orderAfter[0] != orderBefore[1] {
		t.Fatalf("head pick %+v, want %+v", orderAfter[0], orderBefore[1])
	}
}
