package infra

import (
	"github.com/cybedefend/cdscan/pkg/domain/interfaces"
	"github.com/cybedefend/cdscan/pkg/infra/git"
	"github.com/cybedefend/cdscan/pkg/repository/memory"
)

type Clients struct {
	cybedefend     interfaces.CybeDefend
	branchDetector interfaces.BranchDetector
	bqClient       interfaces.BigQuery
	archiveStore   interfaces.ArchiveStore
	scanRepository interfaces.ScanRepository
}

type Option func(*Clients)

// New builds the client set. Branch detection uses the local git checkout
// and scan history is kept in memory unless overridden.
func New(options ...Option) *Clients {
	client := &Clients{
		branchDetector: git.New(),
		scanRepository: memory.New(),
	}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Clients) CybeDefend() interfaces.CybeDefend {
	return x.cybedefend
}
func (x *Clients) BranchDetector() interfaces.BranchDetector {
	return x.branchDetector
}
func (x *Clients) BigQuery() interfaces.BigQuery {
	return x.bqClient
}
func (x *Clients) ArchiveStore() interfaces.ArchiveStore {
	return x.archiveStore
}
func (x *Clients) ScanRepository() interfaces.ScanRepository {
	return x.scanRepository
}

func WithCybeDefend(client interfaces.CybeDefend) Option {
	return func(x *Clients) {
		x.cybedefend = client
	}
}

func WithBranchDetector(detector interfaces.BranchDetector) Option {
	return func(x *Clients) {
		x.branchDetector = detector
	}
}

func WithBigQuery(client interfaces.BigQuery) Option {
	return func(x *Clients) {
		x.bqClient = client
	}
}

func WithArchiveStore(store interfaces.ArchiveStore) Option {
	return func(x *Clients) {
		x.archiveStore = store
	}
}

func WithScanRepository(repo interfaces.ScanRepository) Option {
	return func(x *Clients) {
		x.scanRepository = repo
	}
}
