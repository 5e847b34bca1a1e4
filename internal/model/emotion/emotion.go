package emotion

import "strings"

// Label 表示系统支持的情绪标签（固定闭集）。
type Label string

const (
	Joy     Label = "joy"
	Fear    Label = "fear"
	Sadness Label = "sadness"
	Anger   Label = "anger"
	Love    Label = "love"
	Peace   Label = "peace"
	Neutral Label = "neutral"
)

// Labels returns the closed label set in a fixed order.
func Labels() []Label {
	return []Label{Joy, Fear, Sadness, Anger, Love, Peace, Neutral}
}

// ParseLabel maps a raw string onto the closed label set.
func ParseLabel(raw string) (Label, bool) {
	switch Label(strings.ToLower(strings.TrimSpace(raw))) {
	case Joy:
		return Joy, true
	case Fear:
		return Fear, true
	case Sadness:
		return Sadness, true
	case Anger:
		return Anger, true
	case Love:
		return Love, true
	case Peace:
		return Peace, true
	case Neutral:
		return Neutral, true
	default:
		return "", false
	}
}

// Color 返回情绪对应的展示颜色。
func (l Label) Color() string {
	switch l {
	case Joy:
		return "#ffb000"
	case Fear:
		return "#b644ff"
	case Sadness:
		return "#4a9eff"
	case Anger:
		return "#ff4757"
	case Love:
		return "#ff6b9d"
	case Peace:
		return "#00ff88"
	default:
		return "#808080"
	}
}
