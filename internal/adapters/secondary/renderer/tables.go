package renderer

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type colorScheme struct {
	bg, border, text, badge string
}

var colorSchemes = map[string]colorScheme{
	"yellow":  {"bg-yellow-500/20", "border-yellow-500/30", "text-yellow-400", "bg-yellow-500/20"},
	"blue":    {"bg-blue-500/20", "border-blue-500/30", "text-blue-400", "bg-blue-500/20"},
	"green":   {"bg-green-500/20", "border-green-500/30", "text-green-400", "bg-green-500/20"},
	"red":     {"bg-red-500/10", "border-red-500/30", "text-red-400", "bg-red-500/20"},
	"purple":  {"bg-purple-500/20", "border-purple-500/30", "text-purple-400", "bg-purple-500/20"},
	"orange":  {"bg-orange-500/20", "border-orange-500/30", "text-orange-400", "bg-orange-500/20"},
	"accent":  {"bg-accent/20", "border-accent/50", "text-accent", "bg-accent/30"},
	"default": {"bg-slate-900/50", "border-slate-700", "text-white", "bg-slate-700"},
}

func schemeFor(color string) colorScheme {
	if s, ok := colorSchemes[color]; ok {
		return s
	}
	return colorSchemes["default"]
}

// Lucide icon names keyed by lower-cased card title
var cardIcons = map[string]string{
	"jpg":            "image",
	"jpeg":           "image",
	"png":            "file-image",
	"svg":            "pen-tool",
	"gif":            "film",
	"webp":           "zap",
	"avif":           "sparkles",
	"performance":    "gauge",
	"seo":            "search",
	"accessibilité":  "accessibility",
	"compression":    "minimize-2",
	"redimensionner": "maximize-2",
	"upload":         "upload",
	"download":       "download",
	"check":          "check",
	"error":          "x",
	"warning":        "alert-triangle",
	"info":           "info",
	"tip":            "lightbulb",
	"code":           "code",
	"file":           "file",
	"folder":         "folder",
	"settings":       "settings",
	"tools":          "wrench",
	"web":            "globe",
	"mobile":         "smartphone",
	"speed":          "zap",
	"slow":           "snail",
	"fast":           "rocket",
}

type emojiIcon struct {
	name, color string
}

var emojiIcons = map[string]emojiIcon{
	"⚡":  {"zap", "text-yellow-400"},
	"🚀":  {"rocket", "text-green-400"},
	"🐌":  {"snail", "text-red-400"},
	"✅":  {"check-circle", "text-green-400"},
	"✓":  {"check", "text-green-400"},
	"❌":  {"x-circle", "text-red-400"},
	"✗":  {"x", "text-red-400"},
	"⚠️": {"alert-triangle", "text-yellow-400"},
	"⚠":  {"alert-triangle", "text-yellow-400"},
	"♿":  {"accessibility", "text-blue-400"},
	"🤖":  {"bot", "text-purple-400"},
	"🔄":  {"refresh-cw", "text-cyan-400"},
	"💡":  {"lightbulb", "text-yellow-400"},
	"📱":  {"smartphone", "text-blue-400"},
	"🔍":  {"search", "text-slate-300"},
	"🔥":  {"flame", "text-orange-400"},
	"⭐":  {"star", "text-yellow-400"},
	"🎯":  {"target", "text-red-400"},
	"👍":  {"thumbs-up", "text-green-400"},
	"👎":  {"thumbs-down", "text-red-400"},
	"✨":  {"sparkles", "text-accent"},
	"📊":  {"bar-chart-2", "text-blue-400"},
	"📈":  {"trending-up", "text-green-400"},
	"📉":  {"trending-down", "text-red-400"},
	"🔒":  {"lock", "text-slate-300"},
	"🔓":  {"unlock", "text-green-400"},
	"📁":  {"folder", "text-yellow-400"},
	"📄":  {"file-text", "text-slate-300"},
	"🖼️": {"image", "text-purple-400"},
	"🖼":  {"image", "text-purple-400"},
	"🌐":  {"globe", "text-blue-400"},
	"💾":  {"hard-drive", "text-slate-300"},
	"⏱️": {"clock", "text-slate-300"},
	"⏱":  {"clock", "text-slate-300"},
}

// iconForEmoji looks an emoji up with and without its variation selector
func iconForEmoji(emoji string) (emojiIcon, bool) {
	if icon, ok := emojiIcons[emoji]; ok {
		return icon, true
	}
	icon, ok := emojiIcons[strings.TrimSuffix(emoji, variationSelector)]
	return icon, ok
}

// variationSelector requests emoji presentation of the preceding rune
const variationSelector = "\ufe0f"

func emojiSet(emojis ...string) map[string]bool {
	set := make(map[string]bool, len(emojis))
	for _, e := range emojis {
		set[e] = true
		set[strings.TrimSuffix(e, variationSelector)] = true
	}
	return set
}

var (
	positiveEmojis = emojiSet("⚡", "🚀", "✅", "💚", "✓", "👍", "🎯", "💡", "📱", "🔥", "⭐", "✨")
	negativeEmojis = emojiSet("🐌", "❌", "💔", "⚠️", "🛑", "👎", "😢")

	positiveKeywords = []string{"rapide", "gain", "amélioration", "optimal"}
	negativeKeywords = []string{"lent", "slow"}
)

// foldCase lower-cases text for keyword and icon lookups.
// A Caser is stateful, so each call gets its own.
func foldCase(s string) string {
	return cases.Lower(language.Und).String(s)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
