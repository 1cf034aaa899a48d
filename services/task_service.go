package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"task-allocator/assignment"
	"task-allocator/models"
	"task-allocator/utilities"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store é o que o serviço precisa do banco de documentos.
type Store interface {
	FindProject(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	FindEligibleMembers(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	CountTasksByAssignee(ctx context.Context, userID primitive.ObjectID) (int, error)
	InsertTask(ctx context.Context, task *models.Task) error
	ListTasksByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error)
	FindTask(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
	UpdateTaskStatus(ctx context.Context, id primitive.ObjectID, status models.TaskStatus) error
	Dump(ctx context.Context) (*models.DatabaseDump, error)
}

type MilestonesGenerator interface {
	GenerateMilestones(ctx context.Context, projectID string, titles []string, description string) (*models.Milestones, error)
}

type TaskNotifier interface {
	SendTaskAssigned(ctx context.Context, to, taskName string) error
}

type TaskService struct {
	store     Store
	generator MilestonesGenerator
	notifier  TaskNotifier
	locks     *assignment.ProjectLocks
	now       func() time.Time
}

func NewTaskService(store Store, generator MilestonesGenerator, notifier TaskNotifier) *TaskService {
	return &TaskService{
		store:     store,
		generator: generator,
		notifier:  notifier,
		locks:     assignment.NewProjectLocks(),
		now:       time.Now,
	}
}

var generateRequestMessages = map[string]string{
	"project_id":  "Invalid project_id format.",
	"titles":      "Titles and description are required.",
	"description": "Titles and description are required.",
}

func invalidIDMessage(field string) string {
	return fmt.Sprintf("Invalid %s format.", field)
}

// ParseObjectID valida um id de 24 caracteres hexadecimais e o converte.
func ParseObjectID(id, field string) (primitive.ObjectID, error) {
	if err := utilities.ValidateVar(id, utilities.ObjectIDRule, invalidIDMessage(field)); err != nil {
		return primitive.NilObjectID, err
	}
	return toObjectID(id, field)
}

// toObjectID só converte; "0x" + 22 dígitos passa pela regra mas não é um ObjectID.
func toObjectID(id, field string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, utilities.NewError(utilities.KindBadRequest, invalidIDMessage(field))
	}
	return oid, nil
}

// CreateTaskResult junta a tarefa criada com a análise da IA.
type CreateTaskResult struct {
	Task       *models.Task
	Assignee   *models.User
	Milestones *models.Milestones
}

// GenerateAndAssign gera os metadados com a IA, escolhe o responsável e grava
// a tarefa. Se ninguém for elegível, nada é gravado.
func (s *TaskService) GenerateAndAssign(ctx context.Context, req models.GenerateMilestonesRequest) (*CreateTaskResult, error) {
	if err := utilities.ValidateStruct(req, generateRequestMessages); err != nil {
		return nil, err
	}
	projectID, err := toObjectID(req.ProjectID, "project_id")
	if err != nil {
		return nil, err
	}

	milestones, err := s.generator.GenerateMilestones(ctx, projectID.Hex(), req.Titles, req.Description)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Name:        strings.Join(req.Titles, ", "),
		Description: req.Description,
		ProjectID:   projectID,
		Summary:     milestones.Summary(),
		Priority:    milestones.Priority(),
		Notes:       milestones.Notes(),
		Skills:      milestones.Skills(),
		Status:      models.StatusPending,
	}

	assignee, err := s.assignAndInsert(ctx, projectID, task)
	if err != nil {
		return nil, err
	}

	s.notifyAssignee(ctx, assignee, task)
	return &CreateTaskResult{Task: task, Assignee: assignee, Milestones: milestones}, nil
}

// assignAndInsert roda com o projeto bloqueado, para que a contagem lida não
// mude antes da inserção.
func (s *TaskService) assignAndInsert(ctx context.Context, projectID primitive.ObjectID, task *models.Task) (*models.User, error) {
	unlock := s.locks.Lock(projectID.Hex())
	defer unlock()

	project, err := s.store.FindProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	members, err := s.store.FindEligibleMembers(ctx, project.Members)
	if err != nil {
		return nil, err
	}

	counts := make(map[primitive.ObjectID]int, len(members))
	for _, m := range members {
		n, err := s.store.CountTasksByAssignee(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		counts[m.ID] = n
	}

	assignee, ok := assignment.SelectAssignee(members, task.Skills, func(u models.User) int { return counts[u.ID] })
	if !ok {
		utilities.LogInfo("Nenhum membro elegível no projeto %s para as skills %v", projectID.Hex(), task.Skills)
		return nil, utilities.NewError(utilities.KindNoEligibleAssignee, "No eligible user found to assign this task (check members and skills).")
	}

	task.AssignedTo = assignee.ID
	task.CreatedAt = s.now().UTC()
	if err := s.store.InsertTask(ctx, task); err != nil {
		return nil, err
	}
	utilities.LogInfo("Tarefa '%s' (ID: %s) atribuída a %s", task.Name, task.ID.Hex(), assignee.ID.Hex())
	return assignee, nil
}

func (s *TaskService) notifyAssignee(ctx context.Context, assignee *models.User, task *models.Task) {
	if s.notifier == nil {
		return
	}
	if assignee.Email == "" {
		utilities.LogWarn("Usuário %s sem e-mail; notificação da tarefa %s não enviada", assignee.ID.Hex(), task.ID.Hex())
		return
	}
	if err := s.notifier.SendTaskAssigned(ctx, assignee.Email, task.Name); err != nil {
		utilities.LogError(err, "Falha ao enviar notificação da tarefa "+task.ID.Hex())
	}
}

// ListProjectTasks devolve as tarefas do projeto; NotFound se não houver nenhuma.
func (s *TaskService) ListProjectTasks(ctx context.Context, rawProjectID string) ([]models.Task, error) {
	projectID, err := ParseObjectID(rawProjectID, "project_id")
	if err != nil {
		return nil, err
	}
	tasks, err := s.store.ListTasksByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, utilities.NewError(utilities.KindNotFound, "No tasks found for this project.")
	}
	return tasks, nil
}

// CompleteTask marca a tarefa como concluída.
func (s *TaskService) CompleteTask(ctx context.Context, rawTaskID string) (*models.Task, error) {
	taskID, err := ParseObjectID(rawTaskID, "task_id")
	if err != nil {
		return nil, err
	}
	task, err := s.store.FindTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Status == models.StatusCompleted {
		return nil, utilities.NewError(utilities.KindBadRequest, "Task is already completed.")
	}
	if err := s.store.UpdateTaskStatus(ctx, taskID, models.StatusCompleted); err != nil {
		return nil, err
	}
	task.Status = models.StatusCompleted
	return task, nil
}

// DumpDatabase devolve todos os documentos.
func (s *TaskService) DumpDatabase(ctx context.Context) (*models.DatabaseDump, error) {
	return s.store.Dump(ctx)
}
