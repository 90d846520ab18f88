package handler

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"
)

var imageExtensions = map[string]string{
	"png":  ".png",
	"jpeg": ".jpg",
	"gif":  ".gif",
	"webp": ".webp",
}

// UploadImage 处理后台图片上传：校验大小与格式，按日期加 UUID 命名，返回访问地址与尺寸。
func (a *API) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, a.maxUploadBytes+1<<20)

	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "image file is required")
		return
	}
	if file.Size > a.maxUploadBytes {
		respondError(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("image exceeds %d MB", a.maxUploadBytes>>20))
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "unable to read image")
		return
	}
	defer src.Close()

	cfg, format, err := image.DecodeConfig(src)
	if err != nil {
		respondError(c, http.StatusBadRequest, "only png, jpeg, gif and webp images are allowed")
		return
	}
	ext, ok := imageExtensions[format]
	if !ok {
		respondError(c, http.StatusBadRequest, "only png, jpeg, gif and webp images are allowed")
		return
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		respondError(c, http.StatusInternalServerError, "unable to read image")
		return
	}

	if err := os.MkdirAll(a.uploadDir, 0o755); err != nil {
		a.log.Error("create upload dir failed", zap.String("dir", a.uploadDir), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to store image")
		return
	}

	name := fmt.Sprintf("%s-%s%s", a.now().Format("20060102"), uuid.New().String(), ext)
	if err := writeUpload(filepath.Join(a.uploadDir, name), src); err != nil {
		a.log.Error("store upload failed", zap.String("file", name), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to store image")
		return
	}

	a.log.Info("image uploaded", zap.String("file", name), zap.Int64("bytes", file.Size))
	c.JSON(http.StatusCreated, gin.H{
		"url":    path.Join(a.uploadURL, name),
		"width":  cfg.Width,
		"height": cfg.Height,
	})
}

func writeUpload(dst string, src io.Reader) error {
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
