package memory

import (
	"github.com/cybedefend/cdscan/pkg/domain/interfaces"
	"github.com/cybedefend/cdscan/pkg/domain/model"
)

// New creates an in-memory scan history. Its content is lost on exit.
func New() interfaces.ScanRepository {
	return &scanRepository{
		scans: make(map[string]*model.ScanRecord),
	}
}
