package dictionary

type SearchQuery struct {
	Query string `query:"query" json:"query,omitempty" validate:"max=100"`
}

type UpsertPayload struct {
	Answer        string  `json:"answer" mod:"trim" validate:"required,max=200"`
	InputHiragana string  `json:"inputHiragana" mod:"trim" validate:"required,max=200"`
	InputRomaji   string  `json:"inputRomaji" mod:"trim" validate:"required,max=200"`
	InputEnglish  *string `json:"inputEnglish,omitempty" mod:"trim" validate:"omitempty,max=200"`
}

type DeletePayload struct {
	Keywords []string `json:"keywords" validate:"required,min=1,dive,required"`
}
