package worker

// Log messages
const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgJobDropped      = "Job queue full, dropping job"
	LogMsgWorkersStarted  = "Worker pool started"
	LogMsgWorkersStopped  = "Worker pool stopped"
)

// Job names
const (
	JobNameStep     = "step"
	JobNameAutosave = "autosave"
)
