package model

type PromptKey string

const (
	PromptImageEnhance PromptKey = "imageEnhancePrompt"
	PromptImageCaption PromptKey = "imageCaptionPrompt"
	PromptVideoEnhance PromptKey = "videoEnhancePrompt"
	PromptVideoCaption PromptKey = "videoCaptionPrompt"
)

// PromptSet holds the four editable system prompts that steer the
// enhancement and captioning models.
type PromptSet struct {
	ImageEnhance string `json:"imageEnhancePrompt"`
	ImageCaption string `json:"imageCaptionPrompt"`
	VideoEnhance string `json:"videoEnhancePrompt"`
	VideoCaption string `json:"videoCaptionPrompt"`
}

func (s *PromptSet) Get(key PromptKey) (string, bool) {
	switch key {
	case PromptImageEnhance:
		return s.ImageEnhance, true
	case PromptImageCaption:
		return s.ImageCaption, true
	case PromptVideoEnhance:
		return s.VideoEnhance, true
	case PromptVideoCaption:
		return s.VideoCaption, true
	}
	return "", false
}
