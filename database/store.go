package database

import (
	"context"
	"errors"
	"fmt"

	"task-allocator/models"
	"task-allocator/utilities"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	projectsCollection = "projects"
	usersCollection    = "users"
	tasksCollection    = "tasks"
)

// MongoStore lê e grava projetos, usuários e tarefas.
type MongoStore struct {
	projects *mongo.Collection
	users    *mongo.Collection
	tasks    *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		projects: db.Collection(projectsCollection),
		users:    db.Collection(usersCollection),
		tasks:    db.Collection(tasksCollection),
	}
}

func (s *MongoStore) FindProject(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var project models.Project
	err := s.projects.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utilities.NewError(utilities.KindNotFound, "Project not found.")
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar projeto %s: %w", id.Hex(), err)
	}
	return &project, nil
}

// FindEligibleMembers busca os usuários de ids que não são project manager,
// na mesma ordem de ids.
func (s *MongoStore) FindEligibleMembers(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	filter := bson.M{
		"_id":      bson.M{"$in": ids},
		"position": bson.M{"$ne": models.PositionProjectManager},
	}
	cursor, err := s.users.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar membros: %w", err)
	}
	var found []models.User
	if err := cursor.All(ctx, &found); err != nil {
		return nil, fmt.Errorf("erro ao decodificar membros: %w", err)
	}

	return orderByIDs(ids, found), nil
}

// orderByIDs reordena found seguindo ids; o $in do Mongo não preserva a ordem.
func orderByIDs(ids []primitive.ObjectID, found []models.User) []models.User {
	byID := make(map[primitive.ObjectID]models.User, len(found))
	for _, u := range found {
		byID[u.ID] = u
	}
	ordered := make([]models.User, 0, len(found))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			ordered = append(ordered, u)
			delete(byID, id)
		}
	}
	return ordered
}

// CountTasksByAssignee conta todas as tarefas do usuário, sem olhar o status.
func (s *MongoStore) CountTasksByAssignee(ctx context.Context, userID primitive.ObjectID) (int, error) {
	n, err := s.tasks.CountDocuments(ctx, bson.M{"assignedTo": userID})
	if err != nil {
		return 0, fmt.Errorf("erro ao contar tarefas do usuário %s: %w", userID.Hex(), err)
	}
	return int(n), nil
}

func (s *MongoStore) InsertTask(ctx context.Context, task *models.Task) error {
	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	if _, err := s.tasks.InsertOne(ctx, task); err != nil {
		return fmt.Errorf("erro ao inserir tarefa: %w", err)
	}
	return nil
}

func (s *MongoStore) ListTasksByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error) {
	cursor, err := s.tasks.Find(ctx, bson.M{"projectId": projectID})
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar tarefas: %w", err)
	}
	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("erro ao decodificar tarefas: %w", err)
	}
	return tasks, nil
}

func (s *MongoStore) FindTask(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	err := s.tasks.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utilities.NewError(utilities.KindNotFound, "Task not found.")
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar tarefa %s: %w", id.Hex(), err)
	}
	return &task, nil
}

func (s *MongoStore) UpdateTaskStatus(ctx context.Context, id primitive.ObjectID, status models.TaskStatus) error {
	result, err := s.tasks.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("erro ao atualizar status da tarefa: %w", err)
	}
	if result.MatchedCount == 0 {
		return utilities.NewError(utilities.KindNotFound, "Task not found.")
	}
	return nil
}

// Dump devolve todos os documentos das três coleções.
func (s *MongoStore) Dump(ctx context.Context) (*models.DatabaseDump, error) {
	dump := &models.DatabaseDump{
		Projects: []models.Project{},
		Users:    []models.User{},
		Tasks:    []models.Task{},
	}
	if err := findAll(ctx, s.projects, &dump.Projects); err != nil {
		return nil, err
	}
	if err := findAll(ctx, s.users, &dump.Users); err != nil {
		return nil, err
	}
	if err := findAll(ctx, s.tasks, &dump.Tasks); err != nil {
		return nil, err
	}
	return dump, nil
}

func findAll(ctx context.Context, coll *mongo.Collection, out interface{}) error {
	cursor, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("erro ao listar %s: %w", coll.Name(), err)
	}
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("erro ao decodificar %s: %w", coll.Name(), err)
	}
	return nil
}
