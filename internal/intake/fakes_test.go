package intake

import (
	"context"

	"github.com/get2knowio/deacon/internal/board"
	"github.com/get2knowio/deacon/internal/dispatch"
	"github.com/get2knowio/deacon/internal/status"
)

type selectCall struct {
	projectID, itemID, fieldID, optionID string
}

type numberCall struct {
	projectID, itemID, fieldID string
	value                      int
}

type textCall struct {
	projectID, itemID, fieldID, text string
}

// fakeBoard scripts the board client surface for orchestration tests.
type fakeBoard struct {
	login     string
	viewerErr error
	probeErr  error
	projects  []board.ProjectRef
	project   *board.Project
	fetchErr  error
	items     []board.Item
	itemsErr  error

	createFieldID  string
	createFieldErr error
	numberErr      error
	textErr        error
	selectErr      error

	createCalls []string
	numberCalls []numberCall
	textCalls   []textCall
	selectCalls []selectCall
}

func (f *fakeBoard) Viewer(ctx context.Context) (string, error) {
	return f.login, f.viewerErr
}

func (f *fakeBoard) ProbeProject(ctx context.Context, org, number string) (string, error) {
	if f.probeErr != nil {
		return "", f.probeErr
	}
	return "PVT_abc", nil
}

func (f *fakeBoard) ListProjects(ctx context.Context, org string) ([]board.ProjectRef, error) {
	return f.projects, nil
}

func (f *fakeBoard) FetchProject(ctx context.Context, org, number string) (*board.Project, error) {
	return f.project, f.fetchErr
}

func (f *fakeBoard) FetchAllItems(ctx context.Context, projectID string) ([]board.Item, error) {
	return f.items, f.itemsErr
}

func (f *fakeBoard) CreateNumberField(ctx context.Context, projectID, name string) (string, error) {
	f.createCalls = append(f.createCalls, name)
	return f.createFieldID, f.createFieldErr
}

func (f *fakeBoard) SetItemSingleSelect(ctx context.Context, projectID, itemID, fieldID, optionID string) error {
	f.selectCalls = append(f.selectCalls, selectCall{projectID, itemID, fieldID, optionID})
	return f.selectErr
}

func (f *fakeBoard) SetItemNumber(ctx context.Context, projectID, itemID, fieldID string, value int) error {
	f.numberCalls = append(f.numberCalls, numberCall{projectID, itemID, fieldID, value})
	return f.numberErr
}

func (f *fakeBoard) SetItemText(ctx context.Context, projectID, itemID, fieldID, text string) error {
	f.textCalls = append(f.textCalls, textCall{projectID, itemID, fieldID, text})
	return f.textErr
}

func (f *fakeBoard) mutationCount() int {
	return len(f.createCalls) + len(f.numberCalls) + len(f.textCalls) + len(f.selectCalls)
}

type fakeDispatcher struct {
	session dispatch.Session
	started bool
	calls   []int
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, repoSlug string, number int) (dispatch.Session, bool) {
	f.calls = append(f.calls, number)
	return f.session, f.started
}

type fakeCommenter struct {
	bodies []string
	err    error
}

func (f *fakeCommenter) Comment(ctx context.Context, number int, body string) error {
	f.bodies = append(f.bodies, body)
	return f.err
}

// testProject builds a board with the full Status option set plus an
// extra field when withPRField is set.
func testProject(withPRField bool) *board.Project {
	p := &board.Project{
		ID: "PVT_abc",
		Fields: []board.Field{
			{ID: "F2", Name: "Status", Options: statusOptions()},
		},
	}
	if withPRField {
		p.Fields = append(p.Fields, board.Field{ID: "F9", Name: "PR"})
	}
	return p
}

func statusOptions() []status.Option {
	return []status.Option{
		{ID: "O1", Name: "Ready for Takeoff"},
		{ID: "O2", Name: "In Flight"},
		{ID: "O3", Name: "Debrief"},
		{ID: "O4", Name: "Remediation"},
		{ID: "O5", Name: "Verification"},
		{ID: "O6", Name: "Ready for Integration"},
	}
}
