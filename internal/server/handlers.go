package server

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"camprobe/internal/camera"
	"camprobe/internal/config"
	"camprobe/internal/generated"
	"camprobe/internal/logging"

	"github.com/charmbracelet/log"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

var _ generated.ServerInterface = (*CamprobeHandler)(nil)

// CamprobeHandler は生成されたServerInterfaceを実装する
type CamprobeHandler struct {
	config        *config.Config
	cameraManager camera.Manager
	logger        *log.Logger

	// 到達性確認の流量制限
	limiter *rate.Limiter

	swaggerOnce sync.Once
	swagger     *openapi3.T
	swaggerErr  error
}

// NewHandler は新しいCamprobeHandlerを作成する
func NewHandler(cfg *config.Config, manager camera.Manager, logger *log.Logger) *CamprobeHandler {
	if logger == nil {
		logger = logging.Discard()
	}
	return &CamprobeHandler{
		config:        cfg,
		cameraManager: manager,
		logger:        logger,
		limiter:       rate.NewLimiter(rate.Limit(cfg.Ping.Rate), cfg.Ping.Burst),
	}
}

// HealthCheck はヘルスチェックエンドポイントの実装
func (h *CamprobeHandler) HealthCheck(c *gin.Context) {
	response := generated.HealthResponse{
		Status:    generated.Healthy,
		Timestamp: time.Now(),
	}

	c.JSON(http.StatusOK, response)
}

// GetStatus はシステム状態取得エンドポイントの実装
func (h *CamprobeHandler) GetStatus(c *gin.Context) {
	response := generated.StatusResponse{
		Status: generated.Running,
		Server: generated.ServerInfo{
			Host: h.config.Server.Host,
			Port: h.config.Server.Port,
		},
		Cameras:   len(h.cameraManager.GetCameras()),
		Timestamp: time.Now(),
	}

	c.JSON(http.StatusOK, response)
}

// GetOpenAPI はAPI定義を返す
func (h *CamprobeHandler) GetOpenAPI(c *gin.Context) {
	h.swaggerOnce.Do(func() {
		h.swagger, h.swaggerErr = generated.GetSwagger()
	})
	if h.swaggerErr != nil {
		h.logger.Error("API定義の読み込みに失敗しました", "err", h.swaggerErr)
		writeError(c, http.StatusInternalServerError, "internal_error", "API定義を読み込めません", nil)
		return
	}

	c.JSON(http.StatusOK, h.swagger)
}

// GetCameras はカメラ一覧取得エンドポイントの実装
func (h *CamprobeHandler) GetCameras(c *gin.Context) {
	managedCameras := h.cameraManager.GetCameras()
	cameras := make([]generated.CameraInfo, 0, len(managedCameras))

	for _, cam := range managedCameras {
		cameras = append(cameras, toCameraInfo(cam))
	}

	c.JSON(http.StatusOK, generated.CamerasResponse{
		Cameras: cameras,
	})
}

// AddCamera はカメラ追加エンドポイントの実装
func (h *CamprobeHandler) AddCamera(c *gin.Context) {
	var body generated.AddCameraJSONRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", "リクエストボディが不正です", stringPtr(err.Error()))
		return
	}

	cam, err := h.cameraManager.AddCamera(c.Request.Context(), camera.Camera{
		Name:        body.Name,
		VideoConfig: fromVideoConfig(body.VideoConfig),
	})
	switch {
	case errors.Is(err, camera.ErrCameraExists):
		writeError(c, http.StatusConflict, "camera_exists", "同名のカメラが既に存在します", nil)
		return
	case errors.Is(err, camera.ErrInvalidCamera):
		writeError(c, http.StatusBadRequest, "invalid_camera", "カメラ設定が無効です", stringPtr(err.Error()))
		return
	case err != nil:
		h.logger.Error("カメラの追加に失敗しました", "camera", body.Name, "err", err)
		writeError(c, http.StatusInternalServerError, "internal_error", "カメラを追加できません", nil)
		return
	}

	c.JSON(http.StatusCreated, toCameraInfo(*cam))
}

// RemoveCamera はカメラ削除エンドポイントの実装
func (h *CamprobeHandler) RemoveCamera(c *gin.Context, name generated.CameraName) {
	err := h.cameraManager.RemoveCamera(c.Request.Context(), name)
	switch {
	case errors.Is(err, camera.ErrCameraNotFound):
		writeCameraNotFound(c)
		return
	case err != nil:
		h.logger.Error("カメラの削除に失敗しました", "camera", name, "err", err)
		writeError(c, http.StatusInternalServerError, "internal_error", "カメラを削除できません", nil)
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdateCamera はカメラ更新エンドポイントの実装
func (h *CamprobeHandler) UpdateCamera(c *gin.Context, name generated.CameraName) {
	var body generated.UpdateCameraJSONRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", "リクエストボディが不正です", stringPtr(err.Error()))
		return
	}

	update := camera.CameraUpdate{Name: body.Name}
	if body.VideoConfig != nil {
		cfg := fromVideoConfig(*body.VideoConfig)
		update.VideoConfig = &cfg
	}

	cam, err := h.cameraManager.UpdateCamera(c.Request.Context(), name, update)
	switch {
	case errors.Is(err, camera.ErrCameraNotFound):
		writeCameraNotFound(c)
		return
	case errors.Is(err, camera.ErrCameraExists):
		writeError(c, http.StatusConflict, "camera_exists", "同名のカメラが既に存在します", nil)
		return
	case errors.Is(err, camera.ErrInvalidCamera):
		writeError(c, http.StatusBadRequest, "invalid_camera", "カメラ設定が無効です", stringPtr(err.Error()))
		return
	case err != nil:
		h.logger.Error("カメラの更新に失敗しました", "camera", name, "err", err)
		writeError(c, http.StatusInternalServerError, "internal_error", "カメラを更新できません", nil)
		return
	}

	c.JSON(http.StatusOK, toCameraInfo(*cam))
}

// RemoveAllCameras は全カメラ削除エンドポイントの実装
func (h *CamprobeHandler) RemoveAllCameras(c *gin.Context) {
	if err := h.cameraManager.RemoveAllCameras(c.Request.Context()); err != nil {
		h.logger.Error("カメラの一括削除に失敗しました", "err", err)
		writeError(c, http.StatusInternalServerError, "internal_error", "カメラを削除できません", nil)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetCamera はカメラ情報取得エンドポイントの実装
func (h *CamprobeHandler) GetCamera(c *gin.Context, name generated.CameraName) {
	cam, found := h.cameraManager.GetCamera(name)
	if !found {
		writeCameraNotFound(c)
		return
	}

	c.JSON(http.StatusOK, toCameraInfo(*cam))
}

// GetCameraSettings はカメラ設定取得エンドポイントの実装
func (h *CamprobeHandler) GetCameraSettings(c *gin.Context, name generated.CameraName) {
	settings, found := h.cameraManager.GetSettings(name)
	if !found {
		writeCameraNotFound(c)
		return
	}

	c.JSON(http.StatusOK, generated.CameraSettings{
		Name:        settings.Name,
		Url:         settings.URL,
		VideoConfig: toVideoConfig(settings.VideoConfig),
	})
}

// PingCamera はカメラソースの到達性確認エンドポイントの実装
func (h *CamprobeHandler) PingCamera(c *gin.Context, name generated.CameraName, params generated.PingCameraParams) {
	// 存在しないカメラではトークンを消費しない
	if _, found := h.cameraManager.GetCamera(name); !found {
		writeCameraNotFound(c)
		return
	}

	if !h.limiter.Allow() {
		writeError(c, http.StatusTooManyRequests, "too_many_requests", "到達性確認の要求が多すぎます", nil)
		return
	}

	timeout := h.config.Ping.DefaultTimeout
	if params.Timeout != nil {
		timeout = *params.Timeout
	}

	status, err := h.cameraManager.PingCamera(c.Request.Context(), name, timeout)
	switch {
	case errors.Is(err, camera.ErrCameraNotFound):
		// 確認中に削除された
		writeCameraNotFound(c)
		return
	case err != nil:
		h.logger.Error("到達性確認に失敗しました", "camera", name, "err", err)
		writeError(c, http.StatusInternalServerError, "internal_error", "到達性を確認できません", nil)
		return
	}

	c.JSON(http.StatusOK, generated.PingResponse{
		Name:      name,
		Status:    status,
		Timestamp: time.Now(),
	})
}

// ヘルパー関数

// handleParameterError はパラメータの解析エラーを ErrorResponse として返す
func handleParameterError(c *gin.Context, err error, statusCode int) {
	writeError(c, statusCode, "invalid_parameter", "パラメータが不正です", stringPtr(err.Error()))
}

// writeCameraNotFound はカメラが見つからない場合のレスポンスを返す
func writeCameraNotFound(c *gin.Context) {
	writeError(c, http.StatusNotFound, "camera_not_found", "指定されたカメラが見つかりません", nil)
}

// writeError はエラーレスポンスを返す
func writeError(c *gin.Context, status int, code, message string, details *string) {
	c.AbortWithStatusJSON(status, generated.ErrorResponse{
		Error:     code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	})
}

// toCameraInfo はカメラ情報を生成されたスキーマに変換する
func toCameraInfo(cam camera.Camera) generated.CameraInfo {
	return generated.CameraInfo{
		Id:          cam.ID,
		Name:        cam.Name,
		Url:         cam.URL,
		VideoConfig: toVideoConfig(cam.VideoConfig),
	}
}

func toVideoConfig(v camera.VideoConfig) generated.VideoConfig {
	return generated.VideoConfig{
		Source:           v.Source,
		StillImageSource: optionalString(v.StillImageSource),
		SubSource:        optionalString(v.SubSource),
	}
}

func fromVideoConfig(v generated.VideoConfig) camera.VideoConfig {
	cfg := camera.VideoConfig{Source: v.Source}
	if v.StillImageSource != nil {
		cfg.StillImageSource = *v.StillImageSource
	}
	if v.SubSource != nil {
		cfg.SubSource = *v.SubSource
	}
	return cfg
}

// stringPtr は文字列のポインタを返すヘルパー関数
func stringPtr(s string) *string {
	return &s
}

// optionalString は空文字を nil として扱う
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
