package handler

import (
	"stylemate/internal/domain/service"
	"stylemate/internal/infrastructure/firebase"
	"stylemate/internal/usecase"
)

var (
	authHandler        *AuthHandler
	closetHandler      *ClosetHandler
	deckHandler        *DeckHandler
	requestHandler     *RequestHandler
	matchHandler       *MatchHandler
	transactionHandler *TransactionHandler
	chatHandler        *ChatHandler
)

func Setup(
	firebaseAuth *firebase.FirebaseAuthClient,
	authUseCase *usecase.AuthUseCase,
	closetUseCase *usecase.ClosetUseCase,
	deckUseCase *usecase.DeckUseCase,
	swipeUseCase *usecase.SwipeUseCase,
	requestUseCase *usecase.RequestUseCase,
	matchUseCase *usecase.MatchUseCase,
	transactionUseCase *usecase.TransactionUseCase,
	chatUseCase *usecase.ChatUseCase,
	taggingService service.TaggingService,
) {
	authHandler = NewAuthHandler(firebaseAuth, authUseCase)
	closetHandler = NewClosetHandler(closetUseCase, taggingService)
	deckHandler = NewDeckHandler(deckUseCase, swipeUseCase)
	requestHandler = NewRequestHandler(requestUseCase)
	matchHandler = NewMatchHandler(matchUseCase)
	transactionHandler = NewTransactionHandler(transactionUseCase)
	chatHandler = NewChatHandler(chatUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetClosetHandler() *ClosetHandler {
	return closetHandler
}

func GetDeckHandler() *DeckHandler {
	return deckHandler
}

func GetRequestHandler() *RequestHandler {
	return requestHandler
}

func GetMatchHandler() *MatchHandler {
	return matchHandler
}

func GetTransactionHandler() *TransactionHandler {
	return transactionHandler
}

func GetChatHandler() *ChatHandler {
	return chatHandler
}
