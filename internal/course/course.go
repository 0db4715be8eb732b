// Package course lists the recommendable courses and maps each to its
// promotional image.
package course

import (
	"fmt"
	"path/filepath"
)

// Category identifies a recommendable course.
type Category string

const (
	MusicAI          Category = "music_ai"
	VideoAI          Category = "video_ai"
	ChatGPT          Category = "chatgpt"
	ImageAI          Category = "image_ai"
	PromptCollection Category = "prompt_collection"
	DocumentCreation Category = "document_creation"
)

// Categories returns every category in schema order.
func Categories() []Category {
	return []Category{MusicAI, VideoAI, ChatGPT, ImageAI, PromptCollection, DocumentCreation}
}

// Values returns the category ids as strings, for schema enums.
func Values() []string {
	cs := Categories()
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = string(c)
	}
	return out
}

// ParseCategory accepts only the six known ids.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown course category %q", s)
}

// BeginnerFallbackURL is where beginners are sent instead of a course.
const BeginnerFallbackURL = "https://saipon.jp/h/chatgpt/af_bl_m"

// Details is the presentation data for a course.
type Details struct {
	Title       string
	Description string
}

var details = map[Category]Details{
	MusicAI:          {"音楽生成AI講座", "音楽生成AIを活用した革新的な音楽制作手法を習得できます。"},
	VideoAI:          {"動画生成AI講座", "AIを使った効率的な動画制作の手法が身につきます。"},
	ChatGPT:          {"ChatGPT活用講座", "ChatGPTを活用して業務効率を大幅に改善するための実践的なガイドです。"},
	ImageAI:          {"画像生成AI講座", "画像生成AIを使って創造的な作品を生み出すためのテクニックが学べます。"},
	PromptCollection: {"プロンプト集", "AIをより効果的に使いこなすための厳選されたプロンプト集です。"},
	DocumentCreation: {"AI資料作成講座", "AIを活用して資料作成を効率化する方法が学べます。"},
}

// Info returns the display details of c. Unknown categories yield zero Details.
func Info(c Category) Details {
	return details[c]
}

// Resolver maps categories to image files under an asset directory.
type Resolver struct {
	AssetDir string
}

// NewResolver returns a Resolver rooted at dir.
func NewResolver(dir string) *Resolver {
	return &Resolver{AssetDir: dir}
}

// Resolve returns the image path for c, or "" for an unknown category.
// It does not touch the filesystem.
func (r *Resolver) Resolve(c Category) string {
	if _, ok := details[c]; !ok {
		return ""
	}
	return filepath.Join(r.AssetDir, "courses", string(c)+".png")
}
