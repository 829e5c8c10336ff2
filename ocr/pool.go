package ocr

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/opengs/tesswrap/raster"
	"golang.org/x/sync/semaphore"
)

var ErrPoolEmpty = errors.New("pool is empty")

// Fixed set of initialized sessions shared between goroutines. Each recognition checks out one
// session, so at most `size` images are recognized at the same time.
type SessionPool struct {
	size     uint32
	factory  EngineFactory
	dataPath string
	language string
	options  []SessionOption
	sessions []*Session
	engine   string

	workLock             *semaphore.Weighted
	poolManipulationLock sync.Mutex
}

var ErrPoolInitialized = errors.New("pool is already initialized")

func NewSessionPool(size uint32, factory EngineFactory, dataPath string, language string, opts ...SessionOption) *SessionPool {
	size = max(size, 1)
	return &SessionPool{
		size:     size,
		factory:  factory,
		dataPath: dataPath,
		language: language,
		options:  opts,
		sessions: make([]*Session, 0, size),
		workLock: semaphore.NewWeighted(int64(size)),
	}
}

func (p *SessionPool) Init(ctx context.Context) error {
	if err := p.workLock.Acquire(ctx, int64(p.size)); err != nil {
		return errors.Join(errors.New("failed to accuire exclusive lock on entire pool"), err)
	}
	defer p.workLock.Release(int64(p.size))

	p.poolManipulationLock.Lock()
	defer p.poolManipulationLock.Unlock()
	if len(p.sessions) > 0 {
		return ErrPoolInitialized
	}

	for range p.size {
		session := NewSession(p.factory(), p.options...)
		if !session.Initialize(ctx, p.dataPath, p.language) {
			var allErrors = []error{session.Err()}
			for _, s := range p.sessions {
				if err := s.Close(); err != nil {
					allErrors = append(allErrors, err)
				}
			}
			p.sessions = p.sessions[:0]

			return errors.Join(allErrors...)
		}
		p.sessions = append(p.sessions, session)
	}
	p.engine = p.sessions[0].EngineName()
	return nil
}

func (p *SessionPool) Destroy(ctx context.Context) error {
	if err := p.workLock.Acquire(ctx, int64(p.size)); err != nil {
		return errors.Join(errors.New("failed to accuire exclusive lock on entire pool"), err)
	}
	defer p.workLock.Release(int64(p.size))

	var destroyErrors []error
	for _, s := range p.sessions {
		if err := s.Close(); err != nil {
			destroyErrors = append(destroyErrors, err)
		}
	}
	p.sessions = p.sessions[:0]

	return errors.Join(destroyErrors...)
}

func (p *SessionPool) checkout(ctx context.Context) (*Session, error) {
	if err := p.workLock.Acquire(ctx, 1); err != nil {
		return nil, errors.Join(errors.New("failed to accuire work lock"), err)
	}

	p.poolManipulationLock.Lock()
	defer p.poolManipulationLock.Unlock()
	if len(p.sessions) == 0 { // in case if it is not initialized
		p.workLock.Release(1)
		return nil, ErrPoolEmpty
	}
	session := p.sessions[len(p.sessions)-1]
	p.sessions = p.sessions[:len(p.sessions)-1]
	return session, nil
}

func (p *SessionPool) checkin(session *Session) {
	session.Clear()
	p.poolManipulationLock.Lock()
	p.sessions = append(p.sessions, session)
	p.poolManipulationLock.Unlock()
	p.workLock.Release(1)
}

// Recognizes raster with one of the pooled sessions
func (p *SessionPool) RecognizeRaster(ctx context.Context, image *raster.Raster) (Result, error) {
	session, err := p.checkout(ctx)
	if err != nil {
		return Result{}, err
	}
	defer p.checkin(session)

	if err := session.SetRaster(image); err != nil {
		return Result{}, err
	}
	return session.Result(ctx)
}

// Decodes image and recognizes it with one of the pooled sessions
func (p *SessionPool) Recognize(ctx context.Context, image io.Reader) (Result, error) {
	r, _, err := raster.Decode(image)
	if err != nil {
		return Result{}, err
	}
	return p.RecognizeRaster(ctx, r)
}

func (p *SessionPool) IsMimeTypeSupported(mimeType string) bool {
	return raster.IsDecodable(mimeType)
}

func (p *SessionPool) Languages() []string {
	return AvailableLanguages(p.dataPath)
}

// Name of the pooled engine. Empty until the pool is initialized.
func (p *SessionPool) EngineName() string {
	p.poolManipulationLock.Lock()
	defer p.poolManipulationLock.Unlock()
	return p.engine
}

func (p *SessionPool) Size() uint32 {
	return p.size
}

func (p *SessionPool) Language() string {
	return p.language
}

func (p *SessionPool) DataPath() string {
	return p.dataPath
}
