package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MarcinSar/veteyealk/chatbot"
	"github.com/MarcinSar/veteyealk/dashboard"
	"github.com/MarcinSar/veteyealk/gateway"
)

// GetMainEngine wires every route of the assistant onto one engine.
func GetMainEngine(svc *chatbot.Service, dash *dashboard.Service, auth *gateway.JWTAuth, admin gateway.Admin) *gin.Engine {
	route := gin.Default()
	chatbot.RegisterValidations()

	route.Use(gateway.RequestID())
	route.Use(gateway.OptionsMiddleware)
	route.Use(gateway.Instrumentation())

	route.GET("/health", svc.Health)
	route.GET("/metrics", gin.WrapH(promhttp.Handler()))

	chat := route.Group("/chat")
	{
		chat.POST("/session", svc.NewSession)
		chat.POST("/message", svc.Message)
		chat.GET("/session/:id/history", svc.History)
	}

	route.POST("/device/verify", svc.VerifyDevice)
	route.GET("/knowledge/search", svc.KnowledgeSearch)
	route.GET("/calendar/slots", svc.Slots)

	route.POST("/auth/login", auth.LoginHandler(admin))

	ops := route.Group("/dashboard", auth.AuthMiddleware())
	{
		ops.GET("/requests", dash.Requests)
		ops.GET("/requests/:id", dash.Request)
		ops.GET("/stats", dash.Stats)
		ops.GET("/sessions/:id", dash.Transcript)
	}

	return route
}
