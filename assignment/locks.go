package assignment

import "sync"

// ProjectLocks serializa a sequência contar/escolher/inserir por projeto,
// para que duas requisições simultâneas não vejam a mesma contagem.
// Vale apenas dentro de um processo.
type ProjectLocks struct {
	mu    sync.Mutex
	locks map[string]*projectLock
}

type projectLock struct {
	mu      sync.Mutex
	waiters int
}

func NewProjectLocks() *ProjectLocks {
	return &ProjectLocks{locks: make(map[string]*projectLock)}
}

// Lock bloqueia o projeto e devolve a função que o libera.
func (p *ProjectLocks) Lock(projectID string) (unlock func()) {
	p.mu.Lock()
	l, ok := p.locks[projectID]
	if !ok {
		l = &projectLock{}
		p.locks[projectID] = l
	}
	l.waiters++
	p.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		p.mu.Lock()
		l.waiters--
		if l.waiters == 0 {
			delete(p.locks, projectID)
		}
		p.mu.Unlock()
	}
}

// size é usado nos testes.
func (p *ProjectLocks) size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.locks)
}
