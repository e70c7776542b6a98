package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/behrlich/coup-solver/pkg/action"
	"github.com/behrlich/coup-solver/pkg/role"
	"github.com/behrlich/coup-solver/pkg/rules"
)

func newTestGame(t *testing.T, seed int64) *GameState {
	t.Helper()
	gs, err := New(2, seed, rules.Default())
	require.NoError(t, err)
	return gs
}

func TestApply_CoupAt7(t *testing.T) {
	gs := newTestGame(t, 5)
	gs.Players[0].Coins = 7
	beforeRevealed := len(gs.Players[1].Revealed)
	beforeHand := len(gs.Players[1].Hand)

	require.NoError(t, gs.Apply(action.NewTargeted(0, action.Coup, 1)))

	assert.Equal(t, 0, gs.Players[0].Coins)
	assert.Len(t, gs.Players[1].Revealed, beforeRevealed+1)
	assert.Len(t, gs.Players[1].Hand, beforeHand-1)
	assert.Equal(t, 1, gs.CurrentPlayer)
}

func TestApply_MandatoryCoupAt10(t *testing.T) {
	gs := newTestGame(t, 3)
	gs.Players[0].Coins = 10

	legal := gs.LegalActions()
	require.Len(t, legal, 1)
	assert.Equal(t, action.Coup, legal[0].Type)
	assert.Equal(t, 1, legal[0].Target)
}

func TestApply_ForeignAidOpponentPasses(t *testing.T) {
	gs := newTestGame(t, 7)
	startCoins := gs.Players[0].Coins

	require.NoError(t, gs.Apply(action.New(0, action.ForeignAid)))
	require.NoError(t, gs.Apply(action.New(1, action.Pass)))

	assert.Equal(t, startCoins+2, gs.Players[0].Coins)
	assert.Nil(t, gs.PendingAction)
	assert.Equal(t, 1, gs.CurrentPlayer)
}

func TestApply_ForeignAidTruthfulDukeBlock(t *testing.T) {
	gs := newTestGame(t, 8)
	gs.Players[1].Hand = []role.Role{role.Duke, role.Contessa}
	startCoins := gs.Players[0].Coins
	startRevealed := len(gs.Players[0].Revealed)

	require.NoError(t, gs.Apply(action.New(0, action.ForeignAid)))
	require.NoError(t, gs.Apply(action.New(1, action.BlockForeignAid)))
	require.NoError(t, gs.Apply(action.New(0, action.Challenge)))

	assert.Len(t, gs.Players[0].Revealed, startRevealed+1)
	assert.Equal(t, startCoins, gs.Players[0].Coins)
	assert.Nil(t, gs.PendingAction)
	assert.Equal(t, 1, gs.CurrentPlayer)
}

func TestApply_ForeignAidBluffedBlock(t *testing.T) {
	gs := newTestGame(t, 9)
	gs.Players[1].Hand = []role.Role{role.Captain, role.Contessa}
	startCoins := gs.Players[0].Coins
	startRevealed := len(gs.Players[1].Revealed)

	require.NoError(t, gs.Apply(action.New(0, action.ForeignAid)))
	require.NoError(t, gs.Apply(action.New(1, action.BlockForeignAid)))
	require.NoError(t, gs.Apply(action.New(0, action.Challenge)))

	assert.Len(t, gs.Players[1].Revealed, startRevealed+1)
	assert.Equal(t, startCoins+2, gs.Players[0].Coins)
	assert.Nil(t, gs.PendingAction)
}

func TestApply_TaxTruthfulChallenge(t *testing.T) {
	gs := newTestGame(t, 11)
	gs.Players[0].Hand = []role.Role{role.Duke, role.Assassin}
	startCoins := gs.Players[0].Coins
	startRevealed := len(gs.Players[1].Revealed)

	require.NoError(t, gs.Apply(action.New(0, action.Tax)))
	require.NoError(t, gs.Apply(action.New(1, action.Challenge)))

	assert.Equal(t, startCoins+3, gs.Players[0].Coins)
	assert.Len(t, gs.Players[1].Revealed, startRevealed+1)
	assert.Nil(t, gs.PendingAction)
}

func TestApply_TaxBluffedChallenge(t *testing.T) {
	gs := newTestGame(t, 12)
	gs.Players[0].Hand = []role.Role{role.Captain, role.Contessa}
	startCoins := gs.Players[0].Coins
	startRevealed := len(gs.Players[0].Revealed)

	require.NoError(t, gs.Apply(action.New(0, action.Tax)))
	require.NoError(t, gs.Apply(action.New(1, action.Challenge)))

	assert.Equal(t, startCoins, gs.Players[0].Coins)
	assert.Len(t, gs.Players[0].Revealed, startRevealed+1)
	assert.Nil(t, gs.PendingAction)
}

func TestApply_StealTransferCeiling(t *testing.T) {
	gs := newTestGame(t, 13)
	gs.Players[0].Coins = 0
	gs.Players[1].Coins = 2

	require.NoError(t, gs.Apply(action.NewTargeted(0, action.Steal, 1)))
	require.NoError(t, gs.Apply(action.New(1, action.Pass)))

	assert.Equal(t, 2, gs.Players[0].Coins)
	assert.Equal(t, 0, gs.Players[1].Coins)
}

func TestApply_StealTransferCappedByTargetCoins(t *testing.T) {
	gs := newTestGame(t, 14)
	gs.Players[0].Coins = 1
	gs.Players[1].Coins = 1

	require.NoError(t, gs.Apply(action.NewTargeted(0, action.Steal, 1)))
	require.NoError(t, gs.Apply(action.New(1, action.Pass)))

	assert.Equal(t, 2, gs.Players[0].Coins)
	assert.Equal(t, 0, gs.Players[1].Coins)
}

func TestApply_AssassinateCostNonRefundOnPass(t *testing.T) {
	gs := newTestGame(t, 15)
	gs.Players[0].Coins = 3
	startRevealed := len(gs.Players[1].Revealed)

	require.NoError(t, gs.Apply(action.NewTargeted(0, action.Assassinate, 1)))
	assert.Equal(t, 0, gs.Players[0].Coins)

	require.NoError(t, gs.Apply(action.New(1, action.Pass)))
	assert.Len(t, gs.Players[1].Revealed, startRevealed+1)
}

func TestApply_AssassinateCostNonRefundOnBluffedChallenge(t *testing.T) {
	gs := newTestGame(t, 16)
	gs.Players[0].Coins = 3
	gs.Players[0].Hand = []role.Role{role.Captain, role.Contessa}
	startRevealed := len(gs.Players[0].Revealed)

	require.NoError(t, gs.Apply(action.NewTargeted(0, action.Assassinate, 1)))
	assert.Equal(t, 0, gs.Players[0].Coins)

	require.NoError(t, gs.Apply(action.New(1, action.Challenge)))
	assert.Len(t, gs.Players[0].Revealed, startRevealed+1)
	assert.Equal(t, 0, gs.Players[0].Coins)
}

func TestApply_RejectsWrongActor(t *testing.T) {
	gs := newTestGame(t, 1)
	err := gs.Apply(action.New(1, action.Income))
	assert.ErrorIs(t, err, ErrIllegalAction)
}

func TestApply_RejectsIllegalAction(t *testing.T) {
	gs := newTestGame(t, 1)
	gs.Players[0].Coins = 10
	err := gs.Apply(action.New(0, action.Income))
	assert.ErrorIs(t, err, ErrIllegalAction)
}
