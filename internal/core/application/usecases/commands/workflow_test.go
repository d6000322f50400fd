package commands_test

import (
	"testing"
	"time"

	"tendering/internal/core/application/usecases/commands"
	"tendering/internal/core/domain/model/award"
	"tendering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockObserver struct{ mock.Mock }

func (m *MockObserver) ObserveCommand(command string, duration time.Duration, err error) {
	m.Called(command, duration, err)
}

func (m *MockObserver) ObserveAward(a *award.Award) {
	m.Called(a)
}

func TestWorkflow_AwardLine_ObservesCommandAndAward(t *testing.T) {
	ctx := t.Context()
	tn := newTender(t, 10)
	q := finalizedQuotation(t, tn)
	cmd, err := commands.NewAwardLineCommand(q.ID(), q.Lines()[0].ID(), adjudicatedAt)
	require.NoError(t, err)
	m := expectResolution(ctx, tn, q, true)

	observer := new(MockObserver)
	mock.InOrder(
		observer.On("ObserveAward", mock.AnythingOfType("*award.Award")).Return().Once(),
		observer.On("ObserveCommand", "AwardLine", mock.AnythingOfType("time.Duration"), nil).Return().Once(),
	)

	w := commands.NewWorkflow(new(MockTenderUoWFactory), new(MockQuotationUoWFactory), m.factory, observer)
	res, err := w.AwardLine(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, award.Total, res.Award.Status())
	observer.AssertExpectations(t)
}

func TestWorkflow_ObservesFailures(t *testing.T) {
	observer := new(MockObserver)
	observer.On("ObserveCommand", "FinalizeQuotation", mock.AnythingOfType("time.Duration"),
		mock.MatchedBy(func(err error) bool { return err != nil })).Return().Once()

	w := commands.NewWorkflow(new(MockTenderUoWFactory), new(MockQuotationUoWFactory), new(MockUoWFactory), observer)
	_, err := w.FinalizeQuotation(t.Context(), commands.FinalizeQuotationCommand{})

	require.ErrorIs(t, err, commands.ErrFinalizeQuotationCommandIsNotConstructed)
	assert.Equal(t, errs.KindUnknown, errs.KindOf(err))
	observer.AssertExpectations(t)
	observer.AssertNotCalled(t, "ObserveAward", mock.Anything)
}

func TestWorkflow_NilObserver(t *testing.T) {
	w := commands.NewWorkflow(new(MockTenderUoWFactory), new(MockQuotationUoWFactory), new(MockUoWFactory), nil)

	_, err := w.RemoveLine(t.Context(), commands.RemoveLineCommand{})

	require.Error(t, err)
}
