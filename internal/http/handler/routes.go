package handler

import (
	"github.com/gofiber/fiber/v2"

	"docverify/internal/assistant"
	"docverify/internal/service"
)

// Dependencies are the collaborators the HTTP routes call into.
type Dependencies struct {
	Health    Pinger
	Documents service.DocumentService
	Sessions  service.SessionService
	History   HistoryReader
	Assistant assistant.Responder
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Dependencies) {
	app.Get("/health", HealthCheck(d.Health))
	app.Get("/healthz", Liveness())

	docs := app.Group("/documents")
	docs.Get("/", ListDocuments(d.Documents))
	docs.Post("/", UploadDocuments(d.Documents))
	docs.Delete("/", ClearDocuments(d.Documents))
	docs.Get("/:id", GetDocument(d.Documents))
	docs.Get("/:id/verify", VerifyDocument(d.Documents))
	docs.Get("/:id/content", DocumentContent(d.Documents))
	docs.Get("/:id/link", DocumentLink(d.Documents))

	app.Get("/history", ListHistory(d.History))

	sess := app.Group("/session")
	sess.Get("/", CurrentSession(d.Sessions))
	sess.Delete("/", SignOut(d.Sessions))
	sess.Post("/signin", SignIn(d.Sessions))
	sess.Post("/signup", SignUp(d.Sessions))
	sess.Post("/web3", SignInWeb3(d.Sessions))
	sess.Post("/wallet", ConnectWallet(d.Sessions))

	app.Get("/assistant", AssistantTopics(d.Assistant))
	app.Post("/assistant", AssistantReply(d.Assistant))
}
