package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"task-allocator/models"
	"task-allocator/utilities"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeStore struct {
	mu        sync.Mutex
	projects  map[primitive.ObjectID]models.Project
	users     []models.User
	tasks     []models.Task
	insertErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{projects: map[primitive.ObjectID]models.Project{}}
}

func (f *fakeStore) FindProject(_ context.Context, id primitive.ObjectID) (*models.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, utilities.NewError(utilities.KindNotFound, "Project not found.")
	}
	return &p, nil
}

func (f *fakeStore) FindEligibleMembers(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		for _, u := range f.users {
			if u.ID == id && u.Position != models.PositionProjectManager {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

func (f *fakeStore) CountTasksByAssignee(_ context.Context, id primitive.ObjectID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, t := range f.tasks {
		if t.AssignedTo == id {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) InsertTask(_ context.Context, t *models.Task) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t.ID = primitive.NewObjectID()
	f.tasks = append(f.tasks, *t)
	return nil
}

func (f *fakeStore) ListTasksByProject(_ context.Context, id primitive.ObjectID) ([]models.Task, error) {
	var out []models.Task
	for _, t := range f.tasks {
		if t.ProjectID == id {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) FindTask(_ context.Context, id primitive.ObjectID) (*models.Task, error) {
	for _, t := range f.tasks {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, utilities.NewError(utilities.KindNotFound, "Task not found.")
}

func (f *fakeStore) UpdateTaskStatus(_ context.Context, id primitive.ObjectID, status models.TaskStatus) error {
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Status = status
			return nil
		}
	}
	return utilities.NewError(utilities.KindNotFound, "Task not found.")
}

func (f *fakeStore) Dump(context.Context) (*models.DatabaseDump, error) {
	return &models.DatabaseDump{Tasks: f.tasks, Users: f.users}, nil
}

// addProject cria um projeto com os membros informados.
func (f *fakeStore) addProject(members ...models.User) primitive.ObjectID {
	id := primitive.NewObjectID()
	p := models.Project{ID: id, Name: "demo"}
	for _, m := range members {
		f.users = append(f.users, m)
		p.Members = append(p.Members, m.ID)
	}
	f.projects[id] = p
	return id
}

func (f *fakeStore) giveTasks(user models.User, n int) {
	for i := 0; i < n; i++ {
		f.tasks = append(f.tasks, models.Task{ID: primitive.NewObjectID(), AssignedTo: user.ID})
	}
}

type fakeGenerator struct {
	mu         sync.Mutex
	milestones *models.Milestones
	err        error
	calls      int
}

func (g *fakeGenerator) GenerateMilestones(context.Context, string, []string, string) (*models.Milestones, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	return g.milestones, g.err
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (n *fakeNotifier) SendTaskAssigned(_ context.Context, to, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, to)
	return n.err
}

func pythonMilestones() *models.Milestones {
	return &models.Milestones{
		ProjectSummary: models.ProjectSummary{Objective: "Build the API"},
		TaskAllocation: models.TaskAllocation{Priority: "URGENT", RequiredSkills: []string{"python"}},
	}
}

func user(name, position string, skills ...string) models.User {
	return models.User{ID: primitive.NewObjectID(), Name: name, Email: name + "@example.com", Position: position, Skills: skills}
}

func TestGenerateAndAssign_PicksLeastLoaded(t *testing.T) {
	store := newFakeStore()
	a := user("a", "developer", "Python")
	b := user("b", "developer", "python")
	projectID := store.addProject(a, b)
	store.giveTasks(a, 2)
	store.giveTasks(b, 1)
	notifier := &fakeNotifier{}

	svc := NewTaskService(store, &fakeGenerator{milestones: pythonMilestones()}, notifier)
	res, err := svc.GenerateAndAssign(context.Background(), models.GenerateMilestonesRequest{
		Titles: models.Titles{"API"}, Description: "REST API", ProjectID: projectID.Hex(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Assignee.ID != b.ID {
		t.Errorf("expected b, got %s", res.Assignee.Name)
	}
	if res.Task.Status != models.StatusPending || res.Task.Priority != "urgent" {
		t.Errorf("unexpected task %+v", res.Task)
	}
	if res.Task.Summary != "Build the API" {
		t.Errorf("unexpected summary %q", res.Task.Summary)
	}
	if len(notifier.sent) != 1 || notifier.sent[0] != "b@example.com" {
		t.Errorf("expected notification to b, got %v", notifier.sent)
	}
}

func TestGenerateAndAssign_NoEligibleCreatesNothing(t *testing.T) {
	store := newFakeStore()
	a := user("a", "developer", "python")
	pm := user("pm", models.PositionProjectManager, "python")
	projectID := store.addProject(a, pm)
	store.giveTasks(a, 3)
	before := len(store.tasks)

	svc := NewTaskService(store, &fakeGenerator{milestones: pythonMilestones()}, nil)
	_, err := svc.GenerateAndAssign(context.Background(), models.GenerateMilestonesRequest{
		Titles: models.Titles{"API"}, Description: "d", ProjectID: projectID.Hex(),
	})
	if utilities.KindOf(err) != utilities.KindNoEligibleAssignee {
		t.Fatalf("expected NoEligibleAssignee, got %v", err)
	}
	if len(store.tasks) != before {
		t.Errorf("no task should have been inserted")
	}
}

func TestGenerateAndAssign_InvalidProjectID(t *testing.T) {
	gen := &fakeGenerator{milestones: pythonMilestones()}
	svc := NewTaskService(newFakeStore(), gen, nil)

	_, err := svc.GenerateAndAssign(context.Background(), models.GenerateMilestonesRequest{
		Titles: models.Titles{"x"}, Description: "d", ProjectID: "not-hex",
	})
	var appErr *utilities.AppError
	if !errors.As(err, &appErr) || appErr.Kind != utilities.KindBadRequest {
		t.Fatalf("expected BadRequest, got %v", err)
	}
	if appErr.Error() != "Invalid project_id format." {
		t.Errorf("unexpected message %q", appErr.Error())
	}
	if gen.calls != 0 {
		t.Error("model should not be called for a malformed id")
	}
}

func TestGenerateAndAssign_RequestValidation(t *testing.T) {
	validID := primitive.NewObjectID().Hex()
	tests := []struct {
		name   string
		req    models.GenerateMilestonesRequest
		detail string
	}{
		{"padded id", models.GenerateMilestonesRequest{Titles: models.Titles{"x"}, Description: "d", ProjectID: " " + validID + " "}, "Invalid project_id format."},
		{"short id", models.GenerateMilestonesRequest{Titles: models.Titles{"x"}, Description: "d", ProjectID: validID[:23]}, "Invalid project_id format."},
		{"0x prefixed id", models.GenerateMilestonesRequest{Titles: models.Titles{"x"}, Description: "d", ProjectID: "0x" + validID[:22]}, "Invalid project_id format."},
		{"empty id", models.GenerateMilestonesRequest{Titles: models.Titles{"x"}, Description: "d"}, "Invalid project_id format."},
		{"bad id wins over missing titles", models.GenerateMilestonesRequest{ProjectID: "zz"}, "Invalid project_id format."},
		{"no titles", models.GenerateMilestonesRequest{Titles: models.Titles{}, Description: "d", ProjectID: validID}, "Titles and description are required."},
		{"no description", models.GenerateMilestonesRequest{Titles: models.Titles{"x"}, ProjectID: validID}, "Titles and description are required."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{milestones: pythonMilestones()}
			svc := NewTaskService(newFakeStore(), gen, nil)

			_, err := svc.GenerateAndAssign(context.Background(), tt.req)
			if utilities.KindOf(err) != utilities.KindBadRequest {
				t.Fatalf("expected BadRequest, got %v", err)
			}
			if err.Error() != tt.detail {
				t.Errorf("expected %q, got %q", tt.detail, err.Error())
			}
			if gen.calls != 0 {
				t.Error("model should not be called for an invalid request")
			}
		})
	}
}

func TestParseObjectID_PathParams(t *testing.T) {
	id := primitive.NewObjectID()
	got, err := ParseObjectID(id.Hex(), "task_id")
	if err != nil || got != id {
		t.Fatalf("expected %s, got %s (%v)", id.Hex(), got.Hex(), err)
	}
	if _, err := ParseObjectID(id.Hex()+"00", "task_id"); err == nil || err.Error() != "Invalid task_id format." {
		t.Errorf("unexpected error %v", err)
	}
}

func TestGenerateAndAssign_ProjectNotFound(t *testing.T) {
	svc := NewTaskService(newFakeStore(), &fakeGenerator{milestones: pythonMilestones()}, nil)
	_, err := svc.GenerateAndAssign(context.Background(), models.GenerateMilestonesRequest{
		Titles: models.Titles{"x"}, Description: "d", ProjectID: primitive.NewObjectID().Hex(),
	})
	if utilities.KindOf(err) != utilities.KindNotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestGenerateAndAssign_UpstreamFailurePropagates(t *testing.T) {
	store := newFakeStore()
	projectID := store.addProject(user("a", "dev", "python"))
	upstream := utilities.NewError(utilities.KindUpstreamEmpty, "Gemini API returned an empty response.")

	svc := NewTaskService(store, &fakeGenerator{err: upstream}, nil)
	_, err := svc.GenerateAndAssign(context.Background(), models.GenerateMilestonesRequest{
		Titles: models.Titles{"x"}, Description: "d", ProjectID: projectID.Hex(),
	})
	if utilities.KindOf(err) != utilities.KindUpstreamEmpty {
		t.Fatalf("expected UpstreamEmpty, got %v", err)
	}
	if len(store.tasks) != 0 {
		t.Error("no task should have been inserted")
	}
}

func TestGenerateAndAssign_NotificationFailureIsNotFatal(t *testing.T) {
	store := newFakeStore()
	projectID := store.addProject(user("a", "dev", "python"))
	svc := NewTaskService(store, &fakeGenerator{milestones: pythonMilestones()}, &fakeNotifier{err: errors.New("smtp down")})

	if _, err := svc.GenerateAndAssign(context.Background(), models.GenerateMilestonesRequest{
		Titles: models.Titles{"x"}, Description: "d", ProjectID: projectID.Hex(),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGenerateAndAssign_ConcurrentRequestsRespectThreshold(t *testing.T) {
	store := newFakeStore()
	a := user("a", "dev", "python")
	b := user("b", "dev", "python")
	projectID := store.addProject(a, b)
	svc := NewTaskService(store, &fakeGenerator{milestones: pythonMilestones()}, nil)

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.GenerateAndAssign(context.Background(), models.GenerateMilestonesRequest{
				Titles: models.Titles{"x"}, Description: "d", ProjectID: projectID.Hex(),
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	created, rejected := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			created++
		case utilities.KindOf(err) == utilities.KindNoEligibleAssignee:
			rejected++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if created != 6 || rejected != 4 {
		t.Errorf("expected 6 created and 4 rejected, got %d and %d", created, rejected)
	}
}

func TestCompleteTask(t *testing.T) {
	store := newFakeStore()
	taskID := primitive.NewObjectID()
	store.tasks = []models.Task{{ID: taskID, Status: models.StatusPending}}
	svc := NewTaskService(store, nil, nil)

	task, err := svc.CompleteTask(context.Background(), taskID.Hex())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Status != models.StatusCompleted {
		t.Errorf("expected completed, got %s", task.Status)
	}

	if _, err := svc.CompleteTask(context.Background(), taskID.Hex()); utilities.KindOf(err) != utilities.KindBadRequest {
		t.Errorf("expected BadRequest for already completed task, got %v", err)
	}
	if _, err := svc.CompleteTask(context.Background(), primitive.NewObjectID().Hex()); utilities.KindOf(err) != utilities.KindNotFound {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestListProjectTasks(t *testing.T) {
	store := newFakeStore()
	projectID := store.addProject()
	svc := NewTaskService(store, nil, nil)

	if _, err := svc.ListProjectTasks(context.Background(), projectID.Hex()); utilities.KindOf(err) != utilities.KindNotFound {
		t.Errorf("expected NotFound for empty project, got %v", err)
	}
	store.tasks = append(store.tasks, models.Task{ID: primitive.NewObjectID(), ProjectID: projectID})
	tasks, err := svc.ListProjectTasks(context.Background(), projectID.Hex())
	if err != nil || len(tasks) != 1 {
		t.Errorf("expected 1 task, got %d (%v)", len(tasks), err)
	}
}
