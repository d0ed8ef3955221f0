package server

import (
	"context"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/skillsenselab/meetscribe/errors"
	"github.com/skillsenselab/meetscribe/logger"
	"github.com/skillsenselab/meetscribe/meeting"
	"github.com/skillsenselab/meetscribe/sse"
	"github.com/skillsenselab/meetscribe/store"
	"github.com/skillsenselab/meetscribe/validation"
)

// ProcessFunc runs the transcription pipeline on the uploaded audio file,
// reporting progress through notifier. The API does not care how the
// pipeline is assembled; the caller binds backends and configuration.
type ProcessFunc func(ctx context.Context, inputPath string, notifier meeting.Notifier) (*meeting.Result, error)

// API exposes the meeting endpoints: upload, status, listing, and the
// per-meeting progress event stream.
type API struct {
	store   *store.Store
	hub     *sse.Hub
	process ProcessFunc
	log     *logger.Logger
}

// NewAPI creates the meeting API.
func NewAPI(st *store.Store, hub *sse.Hub, process ProcessFunc, log *logger.Logger) *API {
	return &API{
		store:   st,
		hub:     hub,
		process: process,
		log:     log.WithComponent("api"),
	}
}

// Register mounts the v1 routes on the Gin engine.
func (a *API) Register(r *gin.Engine) {
	v1 := r.Group("/v1")
	v1.POST("/meetings", a.createMeeting)
	v1.GET("/meetings", a.listMeetings)
	v1.GET("/meetings/:id", a.getMeeting)
	v1.GET("/meetings/:id/events", a.streamEvents)
}

// createMeeting accepts a multipart upload ("audio" field, optional "title")
// and starts processing asynchronously. It responds 202 with the meeting
// record; clients follow progress via the event stream or by polling.
func (a *API) createMeeting(c *gin.Context) {
	file, err := c.FormFile("audio")
	if err != nil {
		RespondWithError(c, apperrors.MissingField("audio"))
		return
	}

	v := validation.New().
		Custom(file.Size > 0, "audio", "must not be empty").
		Custom(len(c.PostForm("title")) <= 200, "title", "must be at most 200 characters")
	if verr := v.Validate(); verr != nil {
		RespondWithError(c, verr)
		return
	}

	dir, err := os.MkdirTemp("", "meetscribe-upload-*")
	if err != nil {
		RespondWithError(c, apperrors.Internal(err))
		return
	}
	uploadPath := filepath.Join(dir, filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, uploadPath); err != nil {
		_ = os.RemoveAll(dir)
		RespondWithError(c, apperrors.Internal(err))
		return
	}

	m := a.store.Create(c.PostForm("title"))
	a.log.Info("Meeting accepted", map[string]interface{}{
		"meeting_id": m.ID,
		"filename":   file.Filename,
		"size":       file.Size,
	})

	go a.runJob(m.ID, dir, uploadPath)

	RespondAccepted(c, m)
}

// runJob drives the pipeline for one meeting and records the outcome.
func (a *API) runJob(meetingID, dir, uploadPath string) {
	defer func() { _ = os.RemoveAll(dir) }()

	notifier := meeting.MultiNotifier{
		meeting.NewLogNotifier(a.log.WithFields(map[string]interface{}{"meeting_id": meetingID})),
		sse.NewNotifier(a.hub, meetingID),
	}

	result, err := a.process(context.Background(), uploadPath, notifier)
	if err != nil {
		a.log.Error("Meeting processing failed", map[string]interface{}{
			"meeting_id": meetingID,
			"error":      err.Error(),
		})
		if ferr := a.store.Fail(meetingID, err.Error()); ferr != nil {
			a.log.Error("Failed to record job failure", map[string]interface{}{
				"meeting_id": meetingID,
				"error":      ferr.Error(),
			})
		}
		return
	}

	if cerr := a.store.Complete(meetingID, result); cerr != nil {
		a.log.Error("Failed to record job result", map[string]interface{}{
			"meeting_id": meetingID,
			"error":      cerr.Error(),
		})
	}
}

func (a *API) getMeeting(c *gin.Context) {
	m, err := a.store.Get(c.Param("id"))
	if err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOK(c, m)
}

func (a *API) listMeetings(c *gin.Context) {
	meetings := a.store.List()
	RespondOKWithMeta(c, meetings, &Meta{Total: len(meetings)})
}

// streamEvents upgrades the request to an SSE stream scoped to one meeting.
func (a *API) streamEvents(c *gin.Context) {
	id := c.Param("id")
	if _, err := a.store.Get(id); err != nil {
		RespondWithError(c, err)
		return
	}
	sse.ServeSSE(a.hub, c.Writer, c.Request, uuid.NewString(), id)
}
