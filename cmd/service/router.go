package service

import (
	"github.com/linkvault-ai/linkvault/app/core"
	"github.com/linkvault-ai/linkvault/app/response"
	"github.com/linkvault-ai/linkvault/cmd/service/handler"
	"github.com/linkvault-ai/linkvault/cmd/service/middleware"
	"github.com/linkvault-ai/linkvault/pkg/metrics"
)

func serve(core *core.Core) {
	httpSrv := &handler.HttpSrv{
		Core:   core,
		Engine: core.HttpEngine(),
	}
	setupHttpRouter(httpSrv)

	core.HttpEngine().Run(core.Cfg().Addr)
}

func setupHttpRouter(s *handler.HttpSrv) {
	s.Engine.GET("/metrics", metrics.DefaultExportHandler())

	s.Engine.Use(response.NewResponse())
	s.Engine.Use(middleware.Cors)

	apiV1 := s.Engine.Group("/api/v1")
	apiV1.Use(middleware.Identity())
	{
		apiV1.GET("/metadata", s.GetMetadata)

		embeddings := apiV1.Group("/embeddings")
		{
			embeddings.POST("", s.GenerateEmbeddings)
			embeddings.GET("", s.EmbedQuery)
			embeddings.GET("/chunks", s.GetLinkEmbeddings)
		}

		link := apiV1.Group("/links")
		{
			link.POST("", s.CreateLink)
			link.GET("/list", s.ListLinks)
			link.POST("/status", s.LinkStatus)
			link.GET("/:id", s.GetLink)
			link.POST("/:id/refresh", s.RefreshLink)
			link.DELETE("/:id", s.DeleteLink)
		}

		note := apiV1.Group("/notes")
		{
			note.POST("", s.CreateNote)
			note.GET("/list", s.ListNotes)
			note.GET("/:id", s.GetNote)
			note.PUT("/:id", s.UpdateNote)
			note.DELETE("/:id", s.DeleteNote)
		}

		task := apiV1.Group("/tasks")
		{
			task.POST("", s.CreateTask)
			task.POST("/worker", s.TaskWorker)
			task.GET("/list", s.ListTasks)
			task.GET("/:id", s.GetTask)
		}
	}
}
