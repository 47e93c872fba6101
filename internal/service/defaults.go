package service

import "github.com/fundbase/docportal/internal/models"

// DefaultCategories is the built-in due-diligence checklist seeded as the
// default document config.
func DefaultCategories() []models.DocumentCategory {
	return []models.DocumentCategory{
		{
			ID:   "socios-time",
			Name: "Sócios e Time",
			Documents: []models.DocumentItem{
				{
					ID:          "captable-organograma",
					Name:        "Captable e organograma atual",
					Required:    true,
					Description: "Estrutura societária atual da empresa",
				},
				{
					ID:          "historico-captacoes",
					Name:        "Histórico de captações e movimentações societárias",
					Required:    true,
					Description: "Histórico completo de rodadas de investimento",
				},
				{
					ID:          "stock-options",
					Name:        "Informações sobre despesas e plano de incentivo para colaboradores (Stock Options)",
					Required:    false,
					Description: "Documentação do plano de stock options, se houver",
				},
			},
		},
		{
			ID:   "financeiro-operacional",
			Name: "Financeiro/Operacional",
			Documents: []models.DocumentItem{
				{
					ID:          "budget-business-plan",
					Name:        "Budget e Business Plan para os próximos 3 anos",
					Required:    true,
					Description: "Projeções financeiras e plano de negócios",
				},
				{
					ID:          "metricas-operacionais",
					Name:        "Histórico de métricas operacionais e P&L",
					Required:    true,
					Description: "Demonstrativo de resultados e métricas de negócio",
				},
				{
					ID:          "dividas-fluxo-caixa",
					Name:        "Informações sobre dívidas e fluxo de caixa",
					Required:    true,
					Description: "Situação financeira atual e projeções de caixa",
				},
				{
					ID:          "balancetes-auditadas",
					Name:        "Balancetes e demonstrações financeiras auditadas dos últimos 3 anos",
					Required:    true,
					Description: "Demonstrações financeiras auditadas",
				},
				{
					ID:          "expectativa-captacao",
					Name:        "Expectativa de Captação e Roadmap",
					Required:    true,
					Description: "Plano de captação e roadmap de crescimento",
				},
			},
		},
		{
			ID:   "utilizacao-recursos",
			Name: "Utilização dos Recursos",
			Documents: []models.DocumentItem{
				{
					ID:          "roadmap-produtos",
					Name:        "Roadmap de produtos/serviços para os próximos 12 meses",
					Required:    true,
					Description: "Plano de desenvolvimento de produtos",
				},
				{
					ID:          "auditoria-data",
					Name:        "Data da última auditoria disponível",
					Required:    true,
					Description: "Informações sobre a última auditoria realizada",
				},
			},
		},
		{
			ID:   "certidoes-necessarias",
			Name: "Certidões Necessárias",
			Documents: []models.DocumentItem{
				{
					ID:          "certidoes-gerais",
					Name:        "Certidões de tributos, processos judiciais, protestos e trabalhistas",
					Required:    true,
					Description: "Certidões negativas de débitos e processos",
				},
			},
		},
	}
}

// DefaultTemplates are the five message templates seeded on first read.
func DefaultTemplates() []models.MessageTemplate {
	return []models.MessageTemplate{
		{
			Name: "Lembrete",
			Type: models.TemplateReminder,
			Content: "Olá {name}! 👋\n\n" +
				"Notamos que você ainda não concluiu o envio de todos os documentos necessários.\n\n" +
				"{uploadedDocsSection}" +
				"{missingDocsSection}" +
				"Por favor, acesse o sistema para completar o envio dos documentos pendentes.\n\n" +
				"Precisa de ajuda? Entre em contato conosco!\n" +
				"📞 WhatsApp: (11) 99999-9999\n" +
				"📧 Email: suporte@empresa.com\n\n" +
				"Contamos com você! 💪",
			Variables: []string{"name", "uploadedDocs", "missingDocs", "uploadedDocsSection", "missingDocsSection"},
		},
		{
			Name: "Conclusão",
			Type: models.TemplateCompletion,
			Content: "Parabéns {name}! 🎉\n\n" +
				"Recebemos todos os seus documentos! Obrigado pela colaboração.\n\n" +
				"Nossa equipe seguirá com a análise e entraremos em contato em breve.\n\n" +
				"Obrigado! 🙏",
			Variables: []string{"name"},
		},
		{
			Name: "Boas-vindas",
			Type: models.TemplateWelcome,
			Content: "Bem-vindo {name}! 👋\n\n" +
				"Seu acesso ao sistema de documentos foi criado com sucesso!\n\n" +
				"Acesse o sistema e comece a enviar seus documentos.\n\n" +
				"Vamos começar? 🚀",
			Variables: []string{"name"},
		},
		{
			Name: "Follow-up",
			Type: models.TemplateFollowUp,
			Content: "Oi {name}! 📋\n\n" +
				"Lembrete gentil: ainda temos alguns documentos pendentes.\n\n" +
				"Por favor, acesse o sistema para completar o envio.\n\n" +
				"Contamos com você! 💪",
			Variables: []string{"name"},
		},
		{
			Name: "Prazo",
			Type: models.TemplateDeadline,
			Content: "Atenção {name}! ⏰\n\n" +
				"O prazo para envio dos documentos é até {deadline}.\n\n" +
				"Por favor, complete o envio o quanto antes para evitar atrasos.\n\n" +
				"Precisa de ajuda? Entre em contato conosco! 🚨",
			Variables: []string{"name", "deadline"},
		},
	}
}
