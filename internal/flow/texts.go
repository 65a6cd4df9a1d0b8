package flow

// User-facing texts, Portuguese like the audience.
const (
	msgRoot = "📝 O que você deseja fazer?"

	msgChooseOrigin      = "💰 De onde veio essa entrada?"
	msgChooseCategory    = "💸 Escolha a categoria:"
	msgChooseSubcategory = "📂 Escolha a subcategoria:"
	msgChoosePayment     = "💳 Como você pagou?"
	msgChooseDate        = "📅 Qual a data do lançamento?"

	msgAskValue     = "💵 Data %s. Agora digite o valor:"
	msgAskDateValue = "⌨️ Digite a data e o valor em uma mensagem (ex: 25/12/2025 99,90):"
	msgConfirmDate  = "🤔 Você quis dizer %s?"
	msgInvalidDate  = "❌ Não entendi essa data. Digite a data e o valor (ex: 25/12/2025 99,90):"

	msgCatalogFail  = "⚠️ Não consegui buscar as opções agora. Tente novamente em instantes."
	msgEmptyOptions = "⚠️ Nenhuma opção disponível neste momento."
	msgNoPayments   = "⚠️ Nenhuma forma de pagamento configurada."

	msgSubmitOK   = "✅ Lançamento salvo! Data: %s"
	msgSubmitFail = "❌ Não consegui salvar o lançamento. Ele NÃO foi registrado; comece de novo com /lancar."
	msgQueryFail  = "❌ Não consegui consultar agora. Tente novamente em instantes."

	msgReset  = "🔄 Sessão reiniciada. Use /lancar para começar de novo."
	msgBroken = "⚠️ Essa conversa se perdeu. Use /lancar para recomeçar."

	labelKindInflow  = "💰 Entrada"
	labelKindOutflow = "💸 Saída"
	labelBalance     = "📊 Saldo atual"
	labelByCategory  = "📈 Saídas por categoria"

	labelToday       = "Hoje"
	labelYesterday   = "Ontem"
	labelMessageTime = "Data da mensagem"
	labelLastDate    = "Última data (%s)"
	labelTypeDate    = "Digitar data"

	labelAcceptDate = "✅ Sim"
	labelRejectDate = "❌ Não"
)
