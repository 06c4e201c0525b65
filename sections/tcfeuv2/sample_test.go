package tcfeuv2

// legacySample is a section produced by a CMP in the wild, with a publisher purposes segment.
// Its core declares 20 publisher restrictions and holds 14.
const legacySample = "CQaXJQAQaXJQAAGABCENCCFsAP_gAEPgAAiQKmNR_G_fbXlj8TZ36ftkeYxf99hjrsQxBgaJk24FyJvW7JwW32EzNAzapqYKmRIAu1BBAQNlGIDURUCgKIgVqTDMaESEoTNKJ6BEgBMRA2JYCFxvmwBDWQCY5tp9dld5mB-N7dr8ydzyy4BHn3I5XsS1WBAAAAAAAAAAAAAAAQAAgAAAgAAAAAAAAAAAABAAEAAAIAAAAAACAAAAAAAAAAAAAAAAAACAAAAAQSNgfgAKgAcAB4AFwAVAAuAB-AF0ANAAfABCACKAEcAMsAc4A7gCAQEHAQgAiMBGQEaAI4ASIAn4BUACxAF6AMUAa8A6QB2wD_gIQAR6AlYBMUCZAJlATbApACkQFJgKyAV2AsIBagC4AFxALmAXRAvIC8wF9AMQAYsAyEBkYDRgGmgNTAa8A2gBtgDbgG6AN-AgmBI0BQJA5AAXABQAFQALgAcAA8ACAAF8AMgA1AB4AEwAKoAbwA_QCGAIkATQArQBgADDgGUAZYA2YB3AHfAPYA-IB9gH6AQAAikBFwEYgJEAkwBQYCoAKuAXMAvQBigDaAG4AOIAe0BDoCRAE0gJ2AUOAo8BSIC2AFwALkAXYAu8BhoDJAGTgMuAZmAzmBq4GsgNvAbmFABgCKAXQBI0IAQAA2ACQAjgBKQCdgGiAP6AmUBNgCkAFiALcAX-AwIBtQDhAwAIBNgDahAAMAEgCbAG1CgAQCbAG1DAAQCbAG1DoIQAC4AKAAqABwAEEALgAvgBkAGoAPAAmABTACqAFwAMQAbwA_QCGAIgATQAowBWgDAAGGAMoAaIA2QB3wD2APiAfYB-wEUARiAjoCTAFBgKiAq4BYgC5gF5AMUAbQA3ABxAD2gH2AQ6Ai8BIgCaQE7AKHAUeAqwBYoC2AFugLgAXJAuwC7QF3gMNAY9AyMDJAGTgMqgZYBlwDMwGcwNXA1gBt4D-wI7DwAwAPwBFAERAIyAugCRo4AiACQAKAAfAByAEcAJSATsAzIB_QE2ALEAWyAtwBf4DaoG5gboA4QhAeAAWABQAFwANQAqgBcADEAG8APwAwIB3AHeARQAlIBQYCogKuAXMAxQBtAEOgJpAVYAsUBaIC4AFyALsAZGAycBnID-yIAIAjICYiAAkAB4A5ACOAGZATYAsQBngDagG6EoEQACwAKAAcAB4AEwAKoAXAAxQCGAIkAUYArQBgADKAGiANkAd8A_AD9AIsARgAjoBJQCgwFRAVcAuYBeQDaAG4AOIAe0A-wCHQEXgJEATSAnYBQ4CkwFNAKsAWKAtgBcAC5IF2AXaAw2BkYGSAMngZYBlwDOYGsAayA28B_YEdioAMABQCZQF0FAB4AJAAZABQAC2AOQAfYBBwCOAEpAQgAmwBUgC3AGeQNzA3QtALABqAMAAdwBegD7AKHAU0AqwBcAC7AGZgAAA.f_wAAAAAAAAA"
