package assets

// universe is the fixed list of tradable instruments. Prefetch jobs fetch all of it.
var universe = []Asset{
	// stocks
	{Symbol: "AAPL", Name: "Apple Inc.", Type: TypeStock, Category: "Tech", Exchange: "NASDAQ"},
	{Symbol: "MSFT", Name: "Microsoft Corporation", Type: TypeStock, Category: "Tech", Exchange: "NASDAQ"},
	{Symbol: "GOOGL", Name: "Alphabet Inc.", Type: TypeStock, Category: "Tech", Exchange: "NASDAQ"},
	{Symbol: "AMZN", Name: "Amazon.com Inc.", Type: TypeStock, Category: "Tech", Exchange: "NASDAQ"},
	{Symbol: "META", Name: "Meta Platforms Inc.", Type: TypeStock, Category: "Tech", Exchange: "NASDAQ"},
	{Symbol: "NVDA", Name: "NVIDIA Corporation", Type: TypeStock, Category: "Tech", Exchange: "NASDAQ"},
	{Symbol: "TSLA", Name: "Tesla Inc.", Type: TypeStock, Category: "Tech", Exchange: "NASDAQ"},
	{Symbol: "NFLX", Name: "Netflix Inc.", Type: TypeStock, Category: "Tech", Exchange: "NASDAQ"},
	{Symbol: "ADBE", Name: "Adobe Inc.", Type: TypeStock, Category: "Tech", Exchange: "NASDAQ"},
	{Symbol: "CRM", Name: "Salesforce Inc.", Type: TypeStock, Category: "Tech", Exchange: "NYSE"},
	{Symbol: "ORCL", Name: "Oracle Corporation", Type: TypeStock, Category: "Tech", Exchange: "NYSE"},
	{Symbol: "INTC", Name: "Intel Corporation", Type: TypeStock, Category: "Tech", Exchange: "NASDAQ"},
	{Symbol: "AMD", Name: "Advanced Micro Devices", Type: TypeStock, Category: "Tech", Exchange: "NASDAQ"},
	{Symbol: "QCOM", Name: "Qualcomm Inc.", Type: TypeStock, Category: "Tech", Exchange: "NASDAQ"},
	{Symbol: "CSCO", Name: "Cisco Systems Inc.", Type: TypeStock, Category: "Tech", Exchange: "NASDAQ"},
	{Symbol: "JPM", Name: "JPMorgan Chase & Co.", Type: TypeStock, Category: "Finance", Exchange: "NYSE"},
	{Symbol: "BAC", Name: "Bank of America Corp.", Type: TypeStock, Category: "Finance", Exchange: "NYSE"},
	{Symbol: "WFC", Name: "Wells Fargo & Company", Type: TypeStock, Category: "Finance", Exchange: "NYSE"},
	{Symbol: "GS", Name: "Goldman Sachs Group", Type: TypeStock, Category: "Finance", Exchange: "NYSE"},
	{Symbol: "MS", Name: "Morgan Stanley", Type: TypeStock, Category: "Finance", Exchange: "NYSE"},
	{Symbol: "V", Name: "Visa Inc.", Type: TypeStock, Category: "Finance", Exchange: "NYSE"},
	{Symbol: "MA", Name: "Mastercard Inc.", Type: TypeStock, Category: "Finance", Exchange: "NYSE"},
	{Symbol: "AXP", Name: "American Express Company", Type: TypeStock, Category: "Finance", Exchange: "NYSE"},
	{Symbol: "BLK", Name: "BlackRock Inc.", Type: TypeStock, Category: "Finance", Exchange: "NYSE"},
	{Symbol: "SCHW", Name: "Charles Schwab Corp.", Type: TypeStock, Category: "Finance", Exchange: "NYSE"},
	{Symbol: "JNJ", Name: "Johnson & Johnson", Type: TypeStock, Category: "Healthcare", Exchange: "NYSE"},
	{Symbol: "UNH", Name: "UnitedHealth Group", Type: TypeStock, Category: "Healthcare", Exchange: "NYSE"},
	{Symbol: "PFE", Name: "Pfizer Inc.", Type: TypeStock, Category: "Healthcare", Exchange: "NYSE"},
	{Symbol: "ABBV", Name: "AbbVie Inc.", Type: TypeStock, Category: "Healthcare", Exchange: "NYSE"},
	{Symbol: "TMO", Name: "Thermo Fisher Scientific", Type: TypeStock, Category: "Healthcare", Exchange: "NYSE"},
	{Symbol: "LLY", Name: "Eli Lilly and Company", Type: TypeStock, Category: "Healthcare", Exchange: "NYSE"},
	{Symbol: "MRK", Name: "Merck & Co. Inc.", Type: TypeStock, Category: "Healthcare", Exchange: "NYSE"},
	{Symbol: "ABT", Name: "Abbott Laboratories", Type: TypeStock, Category: "Healthcare", Exchange: "NYSE"},
	{Symbol: "WMT", Name: "Walmart Inc.", Type: TypeStock, Category: "Consumer", Exchange: "NYSE"},
	{Symbol: "PG", Name: "Procter & Gamble Co.", Type: TypeStock, Category: "Consumer", Exchange: "NYSE"},
	{Symbol: "KO", Name: "Coca-Cola Company", Type: TypeStock, Category: "Consumer", Exchange: "NYSE"},
	{Symbol: "PEP", Name: "PepsiCo Inc.", Type: TypeStock, Category: "Consumer", Exchange: "NASDAQ"},
	{Symbol: "COST", Name: "Costco Wholesale Corp.", Type: TypeStock, Category: "Consumer", Exchange: "NASDAQ"},
	{Symbol: "NKE", Name: "Nike Inc.", Type: TypeStock, Category: "Consumer", Exchange: "NYSE"},
	{Symbol: "MCD", Name: "McDonald's Corporation", Type: TypeStock, Category: "Consumer", Exchange: "NYSE"},
	{Symbol: "XOM", Name: "Exxon Mobil Corporation", Type: TypeStock, Category: "Energy", Exchange: "NYSE"},
	{Symbol: "CVX", Name: "Chevron Corporation", Type: TypeStock, Category: "Energy", Exchange: "NYSE"},
	{Symbol: "COP", Name: "ConocoPhillips", Type: TypeStock, Category: "Energy", Exchange: "NYSE"},
	{Symbol: "SLB", Name: "Schlumberger Limited", Type: TypeStock, Category: "Energy", Exchange: "NYSE"},
	{Symbol: "EOG", Name: "EOG Resources Inc.", Type: TypeStock, Category: "Energy", Exchange: "NYSE"},
	{Symbol: "MPC", Name: "Marathon Petroleum Corp.", Type: TypeStock, Category: "Energy", Exchange: "NYSE"},
	{Symbol: "PSX", Name: "Phillips 66", Type: TypeStock, Category: "Energy", Exchange: "NYSE"},
	{Symbol: "VLO", Name: "Valero Energy Corporation", Type: TypeStock, Category: "Energy", Exchange: "NYSE"},
	{Symbol: "BA", Name: "Boeing Company", Type: TypeStock, Category: "Industrial", Exchange: "NYSE"},
	{Symbol: "CAT", Name: "Caterpillar Inc.", Type: TypeStock, Category: "Industrial", Exchange: "NYSE"},
	{Symbol: "GE", Name: "General Electric Co.", Type: TypeStock, Category: "Industrial", Exchange: "NYSE"},
	{Symbol: "HON", Name: "Honeywell International", Type: TypeStock, Category: "Industrial", Exchange: "NASDAQ"},
	{Symbol: "MMM", Name: "3M Company", Type: TypeStock, Category: "Industrial", Exchange: "NYSE"},
	{Symbol: "UPS", Name: "United Parcel Service", Type: TypeStock, Category: "Industrial", Exchange: "NYSE"},
	{Symbol: "RTX", Name: "Raytheon Technologies", Type: TypeStock, Category: "Industrial", Exchange: "NYSE"},
	{Symbol: "LMT", Name: "Lockheed Martin Corp.", Type: TypeStock, Category: "Industrial", Exchange: "NYSE"},
	{Symbol: "DE", Name: "Deere & Company", Type: TypeStock, Category: "Industrial", Exchange: "NYSE"},
	{Symbol: "EMR", Name: "Emerson Electric Co.", Type: TypeStock, Category: "Industrial", Exchange: "NYSE"},
	{Symbol: "T", Name: "AT&T Inc.", Type: TypeStock, Category: "Telecom", Exchange: "NYSE"},
	{Symbol: "VZ", Name: "Verizon Communications", Type: TypeStock, Category: "Telecom", Exchange: "NYSE"},
	{Symbol: "TMUS", Name: "T-Mobile US Inc.", Type: TypeStock, Category: "Telecom", Exchange: "NASDAQ"},
	{Symbol: "CHTR", Name: "Charter Communications", Type: TypeStock, Category: "Telecom", Exchange: "NASDAQ"},
	{Symbol: "CMCSA", Name: "Comcast Corporation", Type: TypeStock, Category: "Telecom", Exchange: "NASDAQ"},
	{Symbol: "HD", Name: "Home Depot Inc.", Type: TypeStock, Category: "Retail", Exchange: "NYSE"},
	{Symbol: "LOW", Name: "Lowe's Companies Inc.", Type: TypeStock, Category: "Retail", Exchange: "NYSE"},
	{Symbol: "TGT", Name: "Target Corporation", Type: TypeStock, Category: "Retail", Exchange: "NYSE"},
	{Symbol: "SBUX", Name: "Starbucks Corporation", Type: TypeStock, Category: "Retail", Exchange: "NASDAQ"},
	{Symbol: "TJX", Name: "TJX Companies Inc.", Type: TypeStock, Category: "Retail", Exchange: "NYSE"},
	{Symbol: "BABA", Name: "Alibaba Group", Type: TypeStock, Category: "Retail", Exchange: "NYSE"},
	{Symbol: "LIN", Name: "Linde plc", Type: TypeStock, Category: "Materials", Exchange: "NYSE"},
	{Symbol: "APD", Name: "Air Products & Chemicals", Type: TypeStock, Category: "Materials", Exchange: "NYSE"},
	{Symbol: "SHW", Name: "Sherwin-Williams Company", Type: TypeStock, Category: "Materials", Exchange: "NYSE"},
	{Symbol: "NEM", Name: "Newmont Corporation", Type: TypeStock, Category: "Materials", Exchange: "NYSE"},
	{Symbol: "FCX", Name: "Freeport-McMoRan Inc.", Type: TypeStock, Category: "Materials", Exchange: "NYSE"},
	{Symbol: "NEE", Name: "NextEra Energy Inc.", Type: TypeStock, Category: "Utilities", Exchange: "NYSE"},
	{Symbol: "DUK", Name: "Duke Energy Corporation", Type: TypeStock, Category: "Utilities", Exchange: "NYSE"},
	{Symbol: "SO", Name: "Southern Company", Type: TypeStock, Category: "Utilities", Exchange: "NYSE"},
	{Symbol: "D", Name: "Dominion Energy Inc.", Type: TypeStock, Category: "Utilities", Exchange: "NYSE"},
	{Symbol: "AEP", Name: "American Electric Power", Type: TypeStock, Category: "Utilities", Exchange: "NASDAQ"},
	{Symbol: "AMT", Name: "American Tower Corp.", Type: TypeStock, Category: "Real Estate", Exchange: "NYSE"},
	{Symbol: "PLD", Name: "Prologis Inc.", Type: TypeStock, Category: "Real Estate", Exchange: "NYSE"},
	{Symbol: "CCI", Name: "Crown Castle Inc.", Type: TypeStock, Category: "Real Estate", Exchange: "NYSE"},
	{Symbol: "EQIX", Name: "Equinix Inc.", Type: TypeStock, Category: "Real Estate", Exchange: "NASDAQ"},
	{Symbol: "SPG", Name: "Simon Property Group", Type: TypeStock, Category: "Real Estate", Exchange: "NYSE"},
	{Symbol: "LIGH.PA", Name: "LightOn", Type: TypeStock, Category: "Tech", Exchange: "Euronext Paris"},
	{Symbol: "MC.PA", Name: "LVMH", Type: TypeStock, Category: "Consumer", Exchange: "Euronext Paris"},
	{Symbol: "OR.PA", Name: "L'Oréal", Type: TypeStock, Category: "Consumer", Exchange: "Euronext Paris"},
	{Symbol: "SAN.PA", Name: "Sanofi", Type: TypeStock, Category: "Healthcare", Exchange: "Euronext Paris"},
	{Symbol: "TTE.PA", Name: "TotalEnergies", Type: TypeStock, Category: "Energy", Exchange: "Euronext Paris"},
	{Symbol: "AI.PA", Name: "Air Liquide", Type: TypeStock, Category: "Materials", Exchange: "Euronext Paris"},
	{Symbol: "BNP.PA", Name: "BNP Paribas", Type: TypeStock, Category: "Finance", Exchange: "Euronext Paris"},
	{Symbol: "ACA.PA", Name: "Crédit Agricole", Type: TypeStock, Category: "Finance", Exchange: "Euronext Paris"},
	{Symbol: "GLE.PA", Name: "Société Générale", Type: TypeStock, Category: "Finance", Exchange: "Euronext Paris"},
	{Symbol: "SU.PA", Name: "Schneider Electric", Type: TypeStock, Category: "Industrial", Exchange: "Euronext Paris"},
	{Symbol: "SAF.PA", Name: "Safran", Type: TypeStock, Category: "Industrial", Exchange: "Euronext Paris"},
	{Symbol: "AIR.PA", Name: "Airbus", Type: TypeStock, Category: "Industrial", Exchange: "Euronext Paris"},
	{Symbol: "CS.PA", Name: "AXA", Type: TypeStock, Category: "Finance", Exchange: "Euronext Paris"},
	{Symbol: "DG.PA", Name: "Vinci", Type: TypeStock, Category: "Industrial", Exchange: "Euronext Paris"},
	{Symbol: "EL.PA", Name: "EssilorLuxottica", Type: TypeStock, Category: "Healthcare", Exchange: "Euronext Paris"},
	{Symbol: "BN.PA", Name: "Danone", Type: TypeStock, Category: "Consumer", Exchange: "Euronext Paris"},
	{Symbol: "KER.PA", Name: "Kering", Type: TypeStock, Category: "Consumer", Exchange: "Euronext Paris"},
	{Symbol: "RMS.PA", Name: "Hermès", Type: TypeStock, Category: "Consumer", Exchange: "Euronext Paris"},
	{Symbol: "EN.PA", Name: "Bouygues", Type: TypeStock, Category: "Industrial", Exchange: "Euronext Paris"},
	{Symbol: "CAP.PA", Name: "Capgemini", Type: TypeStock, Category: "Tech", Exchange: "Euronext Paris"},
	{Symbol: "SGO.PA", Name: "Saint-Gobain", Type: TypeStock, Category: "Materials", Exchange: "Euronext Paris"},
	{Symbol: "RNO.PA", Name: "Renault", Type: TypeStock, Category: "Consumer", Exchange: "Euronext Paris"},
	{Symbol: "STM.PA", Name: "STMicroelectronics", Type: TypeStock, Category: "Tech", Exchange: "Euronext Paris"},
	{Symbol: "PUB.PA", Name: "Publicis Groupe", Type: TypeStock, Category: "Consumer", Exchange: "Euronext Paris"},
	{Symbol: "UG.PA", Name: "Peugeot", Type: TypeStock, Category: "Consumer", Exchange: "Euronext Paris"},
	{Symbol: "DSY.PA", Name: "Dassault Systèmes", Type: TypeStock, Category: "Tech", Exchange: "Euronext Paris"},
	{Symbol: "VIE.PA", Name: "Veolia", Type: TypeStock, Category: "Utilities", Exchange: "Euronext Paris"},
	{Symbol: "ORA.PA", Name: "Orange", Type: TypeStock, Category: "Telecom", Exchange: "Euronext Paris"},
	{Symbol: "RI.PA", Name: "Pernod Ricard", Type: TypeStock, Category: "Consumer", Exchange: "Euronext Paris"},
	{Symbol: "URW.PA", Name: "Unibail-Rodamco-Westfield", Type: TypeStock, Category: "Real Estate", Exchange: "Euronext Paris"},
	{Symbol: "ML.PA", Name: "Michelin", Type: TypeStock, Category: "Consumer", Exchange: "Euronext Paris"},
	{Symbol: "HO.PA", Name: "Thales", Type: TypeStock, Category: "Industrial", Exchange: "Euronext Paris"},
	{Symbol: "VIV.PA", Name: "Vivendi", Type: TypeStock, Category: "Consumer", Exchange: "Euronext Paris"},
	{Symbol: "WLN.PA", Name: "Worldline", Type: TypeStock, Category: "Tech", Exchange: "Euronext Paris"},
	{Symbol: "ATO.PA", Name: "Atos", Type: TypeStock, Category: "Tech", Exchange: "Euronext Paris"},
	{Symbol: "FP.PA", Name: "Société BIC", Type: TypeStock, Category: "Consumer", Exchange: "Euronext Paris"},
	{Symbol: "NK.PA", Name: "Imerys", Type: TypeStock, Category: "Materials", Exchange: "Euronext Paris"},
	{Symbol: "GET.PA", Name: "Getlink", Type: TypeStock, Category: "Industrial", Exchange: "Euronext Paris"},
	{Symbol: "SW.PA", Name: "Sodexo", Type: TypeStock, Category: "Consumer", Exchange: "Euronext Paris"},
	{Symbol: "SOI.PA", Name: "Soitec", Type: TypeStock, Category: "Tech", Exchange: "Euronext Paris"},
	{Symbol: "AF.PA", Name: "Air France-KLM", Type: TypeStock, Category: "Industrial", Exchange: "Euronext Paris"},
	{Symbol: "LR.PA", Name: "Legrand", Type: TypeStock, Category: "Industrial", Exchange: "Euronext Paris"},
	{Symbol: "FGR.PA", Name: "Eiffage", Type: TypeStock, Category: "Industrial", Exchange: "Euronext Paris"},
	{Symbol: "ENGI.PA", Name: "ENGIE", Type: TypeStock, Category: "Utilities", Exchange: "Euronext Paris"},
	{Symbol: "BOL.PA", Name: "Bolloré", Type: TypeStock, Category: "Industrial", Exchange: "Euronext Paris"},
	{Symbol: "ADP.PA", Name: "Aéroports de Paris", Type: TypeStock, Category: "Industrial", Exchange: "Euronext Paris"},
	{Symbol: "COV.PA", Name: "Covivio", Type: TypeStock, Category: "Real Estate", Exchange: "Euronext Paris"},
	{Symbol: "FR.PA", Name: "Valeo", Type: TypeStock, Category: "Consumer", Exchange: "Euronext Paris"},
	{Symbol: "MAU.PA", Name: "Maurel & Prom", Type: TypeStock, Category: "Energy", Exchange: "Euronext Paris"},
	{Symbol: "TEP.PA", Name: "Teleperformance", Type: TypeStock, Category: "Tech", Exchange: "Euronext Paris"},
	{Symbol: "VOW3.DE", Name: "Volkswagen", Type: TypeStock, Category: "Consumer", Exchange: "XETRA"},
	{Symbol: "SIE.DE", Name: "Siemens", Type: TypeStock, Category: "Industrial", Exchange: "XETRA"},
	{Symbol: "SAP.DE", Name: "SAP", Type: TypeStock, Category: "Tech", Exchange: "XETRA"},
	{Symbol: "MBG.DE", Name: "Mercedes-Benz Group", Type: TypeStock, Category: "Consumer", Exchange: "XETRA"},
	{Symbol: "BMW.DE", Name: "BMW", Type: TypeStock, Category: "Consumer", Exchange: "XETRA"},
	{Symbol: "ALV.DE", Name: "Allianz", Type: TypeStock, Category: "Finance", Exchange: "XETRA"},
	{Symbol: "BAS.DE", Name: "BASF", Type: TypeStock, Category: "Materials", Exchange: "XETRA"},
	{Symbol: "BAYN.DE", Name: "Bayer", Type: TypeStock, Category: "Healthcare", Exchange: "XETRA"},
	{Symbol: "DTE.DE", Name: "Deutsche Telekom", Type: TypeStock, Category: "Telecom", Exchange: "XETRA"},
	{Symbol: "DBK.DE", Name: "Deutsche Bank", Type: TypeStock, Category: "Finance", Exchange: "XETRA"},
	{Symbol: "ADS.DE", Name: "Adidas", Type: TypeStock, Category: "Consumer", Exchange: "XETRA"},
	{Symbol: "MUV2.DE", Name: "Munich Re", Type: TypeStock, Category: "Finance", Exchange: "XETRA"},
	{Symbol: "IFX.DE", Name: "Infineon", Type: TypeStock, Category: "Tech", Exchange: "XETRA"},
	{Symbol: "HEN3.DE", Name: "Henkel", Type: TypeStock, Category: "Consumer", Exchange: "XETRA"},
	{Symbol: "BP.L", Name: "BP", Type: TypeStock, Category: "Energy", Exchange: "LSE"},
	{Symbol: "SHEL.L", Name: "Shell", Type: TypeStock, Category: "Energy", Exchange: "LSE"},
	{Symbol: "HSBA.L", Name: "HSBC", Type: TypeStock, Category: "Finance", Exchange: "LSE"},
	{Symbol: "AZN.L", Name: "AstraZeneca", Type: TypeStock, Category: "Healthcare", Exchange: "LSE"},
	{Symbol: "GSK.L", Name: "GSK", Type: TypeStock, Category: "Healthcare", Exchange: "LSE"},
	{Symbol: "ULVR.L", Name: "Unilever", Type: TypeStock, Category: "Consumer", Exchange: "LSE"},
	{Symbol: "DGE.L", Name: "Diageo", Type: TypeStock, Category: "Consumer", Exchange: "LSE"},
	{Symbol: "RIO.L", Name: "Rio Tinto", Type: TypeStock, Category: "Materials", Exchange: "LSE"},
	{Symbol: "BARC.L", Name: "Barclays", Type: TypeStock, Category: "Finance", Exchange: "LSE"},
	{Symbol: "VOD.L", Name: "Vodafone", Type: TypeStock, Category: "Telecom", Exchange: "LSE"},
	{Symbol: "LLOY.L", Name: "Lloyds Banking Group", Type: TypeStock, Category: "Finance", Exchange: "LSE"},
	{Symbol: "LSEG.L", Name: "London Stock Exchange", Type: TypeStock, Category: "Finance", Exchange: "LSE"},
	{Symbol: "NESN.SW", Name: "Nestlé", Type: TypeStock, Category: "Consumer", Exchange: "SIX"},
	{Symbol: "ROG.SW", Name: "Roche", Type: TypeStock, Category: "Healthcare", Exchange: "SIX"},
	{Symbol: "NOVN.SW", Name: "Novartis", Type: TypeStock, Category: "Healthcare", Exchange: "SIX"},
	{Symbol: "UBS.SW", Name: "UBS", Type: TypeStock, Category: "Finance", Exchange: "SIX"},
	{Symbol: "ABBN.SW", Name: "ABB", Type: TypeStock, Category: "Industrial", Exchange: "SIX"},
	{Symbol: "ZURN.SW", Name: "Zurich Insurance", Type: TypeStock, Category: "Finance", Exchange: "SIX"},
	{Symbol: "ASML.AS", Name: "ASML", Type: TypeStock, Category: "Tech", Exchange: "AEX"},
	{Symbol: "INGA.AS", Name: "ING Group", Type: TypeStock, Category: "Finance", Exchange: "AEX"},
	{Symbol: "PHIA.AS", Name: "Philips", Type: TypeStock, Category: "Healthcare", Exchange: "AEX"},
	{Symbol: "HEIA.AS", Name: "Heineken", Type: TypeStock, Category: "Consumer", Exchange: "AEX"},
	{Symbol: "ITX.MC", Name: "Inditex (Zara)", Type: TypeStock, Category: "Consumer", Exchange: "BME"},
	{Symbol: "SAN.MC", Name: "Banco Santander", Type: TypeStock, Category: "Finance", Exchange: "BME"},
	{Symbol: "IBE.MC", Name: "Iberdrola", Type: TypeStock, Category: "Utilities", Exchange: "BME"},
	{Symbol: "TEF.MC", Name: "Telefónica", Type: TypeStock, Category: "Telecom", Exchange: "BME"},
	{Symbol: "BBVA.MC", Name: "BBVA", Type: TypeStock, Category: "Finance", Exchange: "BME"},
	{Symbol: "ENI.MI", Name: "Eni", Type: TypeStock, Category: "Energy", Exchange: "Borsa"},
	{Symbol: "ENEL.MI", Name: "Enel", Type: TypeStock, Category: "Utilities", Exchange: "Borsa"},
	{Symbol: "ISP.MI", Name: "Intesa Sanpaolo", Type: TypeStock, Category: "Finance", Exchange: "Borsa"},
	{Symbol: "UCG.MI", Name: "UniCredit", Type: TypeStock, Category: "Finance", Exchange: "Borsa"},
	{Symbol: "STLA.MI", Name: "Stellantis", Type: TypeStock, Category: "Consumer", Exchange: "Borsa"},
	{Symbol: "VOLV-B.ST", Name: "Volvo", Type: TypeStock, Category: "Consumer", Exchange: "OMX"},
	{Symbol: "ERIC-B.ST", Name: "Ericsson", Type: TypeStock, Category: "Tech", Exchange: "OMX"},
	{Symbol: "HM-B.ST", Name: "H&M", Type: TypeStock, Category: "Consumer", Exchange: "OMX"},
	{Symbol: "NOVO-B.CO", Name: "Novo Nordisk", Type: TypeStock, Category: "Healthcare", Exchange: "OMX"},
	// bonds
	{Symbol: "^TNX", Name: "US Treasury 10Y", Type: TypeBond, Category: "", Exchange: ""},
	{Symbol: "^TYX", Name: "US Treasury 30Y", Type: TypeBond, Category: "", Exchange: ""},
	{Symbol: "^FVX", Name: "US Treasury 5Y", Type: TypeBond, Category: "", Exchange: ""},
	{Symbol: "^IRX", Name: "US Treasury 13W", Type: TypeBond, Category: "", Exchange: ""},
	{Symbol: "TLT", Name: "20+ Year Treasury ETF", Type: TypeBond, Category: "", Exchange: ""},
	{Symbol: "IEF", Name: "7-10 Year Treasury ETF", Type: TypeBond, Category: "", Exchange: ""},
	{Symbol: "SHY", Name: "1-3 Year Treasury ETF", Type: TypeBond, Category: "", Exchange: ""},
	{Symbol: "LQD", Name: "Investment Grade Corp", Type: TypeBond, Category: "", Exchange: ""},
	{Symbol: "HYG", Name: "High Yield Corp", Type: TypeBond, Category: "", Exchange: ""},
	{Symbol: "EMB", Name: "Emerging Markets Bonds", Type: TypeBond, Category: "", Exchange: ""},
	// indices
	{Symbol: "^GSPC", Name: "S&P 500", Type: TypeIndex, Category: "US", Exchange: ""},
	{Symbol: "^DJI", Name: "Dow Jones", Type: TypeIndex, Category: "US", Exchange: ""},
	{Symbol: "^IXIC", Name: "NASDAQ Composite", Type: TypeIndex, Category: "US", Exchange: ""},
	{Symbol: "^RUT", Name: "Russell 2000", Type: TypeIndex, Category: "US", Exchange: ""},
	{Symbol: "^VIX", Name: "Volatility Index", Type: TypeIndex, Category: "US", Exchange: ""},
	{Symbol: "^FTSE", Name: "FTSE 100", Type: TypeIndex, Category: "Europe", Exchange: ""},
	{Symbol: "^N225", Name: "Nikkei 225", Type: TypeIndex, Category: "Asia", Exchange: ""},
	{Symbol: "^HSI", Name: "Hang Seng", Type: TypeIndex, Category: "Asia", Exchange: ""},
	{Symbol: "^FCHI", Name: "CAC 40", Type: TypeIndex, Category: "Europe", Exchange: ""},
	{Symbol: "^GDAXI", Name: "DAX", Type: TypeIndex, Category: "Europe", Exchange: ""},
	{Symbol: "^STOXX50E", Name: "EURO STOXX 50", Type: TypeIndex, Category: "Europe", Exchange: ""},
	{Symbol: "^AEX", Name: "AEX", Type: TypeIndex, Category: "Europe", Exchange: ""},
	{Symbol: "^IBEX", Name: "IBEX 35", Type: TypeIndex, Category: "Europe", Exchange: ""},
	{Symbol: "^FTMIB", Name: "FTSE MIB", Type: TypeIndex, Category: "Europe", Exchange: ""},
	{Symbol: "^SSMI", Name: "SMI", Type: TypeIndex, Category: "Europe", Exchange: ""},
	{Symbol: "^AXJO", Name: "ASX 200", Type: TypeIndex, Category: "Australia", Exchange: ""},
	{Symbol: "^BVSP", Name: "Bovespa", Type: TypeIndex, Category: "Brazil", Exchange: ""},
	{Symbol: "^GSPTSE", Name: "TSX", Type: TypeIndex, Category: "Canada", Exchange: ""},
	{Symbol: "000001.SS", Name: "SSE Composite", Type: TypeIndex, Category: "China", Exchange: ""},
	{Symbol: "^JKSE", Name: "Jakarta Composite", Type: TypeIndex, Category: "Indonesia", Exchange: ""},
}
