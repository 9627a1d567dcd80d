package server

import (
	"io"
	"net/http"
	"strings"
	"time"

	"dockpanel/internal/constants"
	"dockpanel/internal/errors"
	"dockpanel/internal/logger"
	"dockpanel/internal/panel"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// setupRoutes configures the page and API routes
func (s *Server) setupRoutes() {
	// Swagger documentation
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	// Health check
	s.echo.GET("/health", s.handleHealth)

	// HTML panel
	s.echo.GET("/", s.handleIndex)

	api := s.echo.Group("/api")
	api.GET("/state", s.handleGetState)
	api.POST("/refresh", s.handleRefresh)
	api.PUT("/form", s.handleUpdateForm)
	api.POST("/run", s.handleRun)
	api.POST("/compose", s.handleCompose)
	api.GET("/ws", s.handleStateWebSocket)

	containers := api.Group("/containers")
	containers.POST("/:id/restart", s.handleRestart)
}

// handleHealth godoc
// @Summary Health check
// @Description Check if the panel is up and the docker CLI is reachable
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (s *Server) handleHealth(c echo.Context) error {
	docker := "unavailable"
	if ok, _ := s.dockerStatus.Get(c.Request().Context()); ok {
		docker = "available"
	}
	return c.JSON(http.StatusOK, HealthResponse{
		Status: "healthy",
		Docker: docker,
		Uptime: time.Since(s.startTime).Round(time.Second).String(),
	})
}

// handleIndex renders the panel page
func (s *Server) handleIndex(c echo.Context) error {
	return c.Render(http.StatusOK, indexTemplate, s.panel.Snapshot())
}

// handleGetState godoc
// @Summary Get panel state
// @Description Get the container tables, unused images, form fields and console buffer
// @Tags state
// @Produce json
// @Success 200 {object} panel.Snapshot
// @Router /api/state [get]
func (s *Server) handleGetState(c echo.Context) error {
	return c.JSON(http.StatusOK, s.panel.Snapshot())
}

// handleRefresh godoc
// @Summary Reload inventory
// @Description Re-fetch containers and dangling images. Failed inventories keep their previous contents.
// @Tags state
// @Produce json
// @Success 200 {object} RefreshResponse
// @Router /api/refresh [post]
func (s *Server) handleRefresh(c echo.Context) error {
	resp := RefreshResponse{}
	if err := s.panel.Load(c.Request().Context()); err != nil {
		resp.Error = err.Error()
	}
	resp.State = s.panel.Snapshot()

	if wantsRedirect(c) {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return c.JSON(http.StatusOK, resp)
}

// handleUpdateForm godoc
// @Summary Update form fields
// @Description Store run and compose form inputs; omitted fields are left unchanged
// @Tags state
// @Accept json
// @Produce json
// @Param request body FormRequest true "Form fields"
// @Success 200 {object} panel.Form
// @Failure 400 {object} ErrorResponse
// @Router /api/form [put]
func (s *Server) handleUpdateForm(c echo.Context) error {
	var req FormRequest
	if err := c.Bind(&req); err != nil {
		return errors.BadRequest("Invalid request format", err.Error())
	}

	s.panel.State().UpdateForm(req.apply)
	return c.JSON(http.StatusOK, s.panel.Snapshot().Form)
}

// handleRestart godoc
// @Summary Restart a container
// @Description Restart a container and re-fetch the container tables
// @Tags containers
// @Produce json
// @Param id path string true "Container ID"
// @Success 202 {object} panel.ActionResult
// @Failure 400 {object} ErrorResponse
// @Router /api/containers/{id}/restart [post]
func (s *Server) handleRestart(c echo.Context) error {
	result, err := s.panel.Dispatcher().Restart(c.Request().Context(), c.Param("id"))
	return s.respondAction(c, result, err)
}

// handleRun godoc
// @Summary Run a container
// @Description Start a detached container from an image with an optional port spec and env list
// @Tags containers
// @Accept json
// @Produce json
// @Param request body RunRequest true "Run parameters"
// @Success 202 {object} panel.ActionResult
// @Failure 400 {object} ErrorResponse
// @Router /api/run [post]
func (s *Server) handleRun(c echo.Context) error {
	var req RunRequest
	if err := c.Bind(&req); err != nil {
		return errors.BadRequest("Invalid request format", err.Error())
	}

	dispatcher := s.panel.Dispatcher()
	ctx := c.Request().Context()

	if req == (RunRequest{}) {
		result, err := dispatcher.RunForm(ctx)
		return s.respondAction(c, result, err)
	}

	s.panel.State().UpdateForm(func(f *panel.Form) {
		f.Image, f.Ports, f.EnvVars = req.Image, req.Ports, req.EnvVars
	})
	result, err := dispatcher.Run(ctx, req.Image, req.Ports, req.EnvVars)
	return s.respondAction(c, result, err)
}

// handleCompose godoc
// @Summary Apply a compose file
// @Description Write the compose file to the configured path and run compose up. Accepts a JSON body, a "yaml" form field or a multipart "file" upload.
// @Tags compose
// @Accept json,mpfd
// @Produce json
// @Param request body ComposeRequest false "Compose body"
// @Param file formData file false "Compose file"
// @Success 202 {object} panel.ActionResult
// @Failure 400 {object} ErrorResponse
// @Router /api/compose [post]
func (s *Server) handleCompose(c echo.Context) error {
	c.Request().Body = http.MaxBytesReader(c.Response(), c.Request().Body, constants.MaxComposeUploadBytes)

	body, err := readComposeBody(c)
	if err != nil {
		return err
	}

	result, err := s.panel.Dispatcher().ApplyCompose(c.Request().Context(), body)
	return s.respondAction(c, result, err)
}

// readComposeBody extracts the compose file from an upload, a form field or a JSON body
func readComposeBody(c echo.Context) (string, error) {
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		if fh, err := c.FormFile("file"); err == nil {
			f, err := fh.Open()
			if err != nil {
				return "", errors.BadRequest("Failed to open upload", err.Error())
			}
			defer f.Close()

			data, err := io.ReadAll(io.LimitReader(f, constants.MaxComposeUploadBytes))
			if err != nil {
				return "", errors.BadRequest("Failed to read upload", err.Error())
			}
			return string(data), nil
		}
	}

	var req ComposeRequest
	if err := c.Bind(&req); err != nil {
		return "", errors.BadRequest("Invalid request format", err.Error())
	}
	return req.YAML, nil
}

// respondAction writes an action result. Validation errors become 4xx;
// docker failures are reported in the 202 body.
func (s *Server) respondAction(c echo.Context, result panel.ActionResult, err error) error {
	log := logger.GetLogger(c).WithField("action_id", result.ActionID)

	if err != nil {
		log.WithError(err).Warn("Action rejected")
		if wantsRedirect(c) {
			return c.Redirect(http.StatusSeeOther, "/")
		}
		return errors.ToHTTPError(err)
	}

	if wantsRedirect(c) {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return c.JSON(http.StatusAccepted, result)
}
