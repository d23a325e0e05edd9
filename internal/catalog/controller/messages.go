package controller

// User-facing copy.
const (
	LoadFailedMessage   = "Não foi possível carregar os produtos. Tente novamente mais tarde."
	DeletePrompt        = "Tem certeza que deseja deletar este produto?"
	DeleteFailedMessage = "Não foi possível deletar o produto."
	SaveFailedPrefix    = "Erro ao salvar: "
	SaveFailedMessage   = "Não foi possível salvar o produto. Verifique os dados e tente novamente."
	IncompleteMessage   = "Por favor, preencha todos os campos!"
)
