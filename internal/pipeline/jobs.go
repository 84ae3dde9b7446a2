package pipeline

import (
	"sync"
	"time"

	"github.com/dgallion1/docrank/internal/output"
)

// JobStatus represents the state of an analysis job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusParsing    JobStatus = "parsing"
	StatusSegmenting JobStatus = "segmenting"
	StatusAnalyzing  JobStatus = "analyzing"
	StatusRanking    JobStatus = "ranking"
	StatusGenerating JobStatus = "generating"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
	StatusPartial    JobStatus = "partial"
)

// JobFile is one uploaded document awaiting analysis.
type JobFile struct {
	Name string
	Data []byte
}

// Job tracks the state of a single analysis request.
type Job struct {
	mu sync.Mutex

	ID string `json:"job_id"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	Persona     string `json:"persona"`
	JobToBeDone string `json:"job_to_be_done"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	files  []JobFile
	result *output.Result
	errors []string
}

// Progress tracks processing progress.
type Progress struct {
	TotalDocuments  int      `json:"total_documents"`
	DocumentsParsed int      `json:"documents_parsed"`
	SectionsFound   int      `json:"sections_found"`
	Errors          []string `json:"errors"`
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// IncrDocumentsParsed atomically increments the parsed-document count.
func (j *Job) IncrDocumentsParsed() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.DocumentsParsed++
	j.UpdatedAt = time.Now()
}

// SetSectionsFound records the total section count across documents.
func (j *Job) SetSectionsFound(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.SectionsFound = n
	j.UpdatedAt = time.Now()
}

// SetFiles sets the uploaded files for processing.
func (j *Job) SetFiles(files []JobFile) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.files = files
	j.Progress.TotalDocuments = len(files)
}

// Files returns the uploaded files.
func (j *Job) Files() []JobFile {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.files
}

// SetResult stores the completed analysis result.
func (j *Job) SetResult(r *output.Result) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = r
	j.UpdatedAt = time.Now()
}

// Result returns the completed analysis result, or nil if not finished.
func (j *Job) Result() *output.Result {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string    `json:"job_id"`
	Status      JobStatus `json:"status"`
	Phase       string    `json:"phase"`
	Persona     string    `json:"persona"`
	JobToBeDone string    `json:"job_to_be_done"`
	Progress    Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:          j.ID,
		Status:      j.Status,
		Phase:       j.Phase,
		Persona:     j.Persona,
		JobToBeDone: j.JobToBeDone,
		Progress: Progress{
			TotalDocuments:  j.Progress.TotalDocuments,
			DocumentsParsed: j.Progress.DocumentsParsed,
			SectionsFound:   j.Progress.SectionsFound,
			Errors:          errs,
		},
	}
}
